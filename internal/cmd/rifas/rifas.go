// Package rifas implements the rifas command: load a raffle board, apply
// edits, render the poster and write the requested exports.
package rifas

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/piwi3910/RifaBoard/internal/config"
	"github.com/piwi3910/RifaBoard/internal/export"
	"github.com/piwi3910/RifaBoard/internal/importer"
	"github.com/piwi3910/RifaBoard/internal/model"
	"github.com/piwi3910/RifaBoard/internal/poster"
	"github.com/piwi3910/RifaBoard/internal/project"
)

// Config holds rifas command configuration.
type Config struct {
	ConfigPath   string  `env:"RIFAS_CONFIG"`
	PresetsPath  string  `env:"RIFAS_PRESETS"`
	Preset       string  `env:"RIFAS_PRESET"`
	LogoPath     string  `env:"RIFAS_LOGO"`
	FontPath     string  `env:"RIFAS_FONT"`
	BoldFontPath string  `env:"RIFAS_BOLD_FONT"`
	GoFonts      bool    `env:"RIFAS_GO_FONTS"`
	TicketPrice  float64 `env:"RIFAS_TICKET_PRICE"`
	ShareBaseURL string  `env:"RIFAS_SHARE_BASE_URL"`
	OutDir       string  `env:"RIFAS_OUT_DIR"        envDefault:"."`
	StatePath    string  `env:"RIFAS_STATE"`
	Verbose      bool    `env:"RIFAS_VERBOSE"`

	// Board source, applied over the state file.
	Link  string
	Title string
	Sold  string

	// Edits, applied in field order.
	Undo   int
	Redo   int
	Reset  bool
	Import string
	Mark   string
	Unmark string
	Range  string
	Toggle string

	// Outputs.
	PNG        string
	NoPNG      bool
	PDF        string
	Tickets    string
	QR         string
	XLSX       string
	DXF        string
	Backup     string
	SavePreset string
	SaveConfig bool
}

// ParseConfig parses environment variables and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "app config file (default ~/.rifas/config.json)")
	fs.StringVar(&cfg.PresetsPath, "presets", cfg.PresetsPath, "brand presets file (default ~/.rifas/presets.json)")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "brand preset name or id to apply")
	fs.StringVar(&cfg.LogoPath, "logo", cfg.LogoPath, "logo image path")
	fs.StringVar(&cfg.FontPath, "font", cfg.FontPath, "regular font path")
	fs.StringVar(&cfg.BoldFontPath, "bold-font", cfg.BoldFontPath, "bold font path")
	fs.BoolVar(&cfg.GoFonts, "go-fonts", cfg.GoFonts, "use the embedded Go fonts when font files are missing")
	fs.Float64Var(&cfg.TicketPrice, "price", cfg.TicketPrice, "ticket price for the sales summary")
	fs.StringVar(&cfg.ShareBaseURL, "base-url", cfg.ShareBaseURL, "base URL for share links")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "directory for the default poster file name")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "board state file to load and save")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")

	fs.StringVar(&cfg.Link, "link", cfg.Link, "share link to load the board from")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "raffle name")
	fs.StringVar(&cfg.Sold, "sold", cfg.Sold, "sold numbers, replacing the loaded list (e.g. 03,17)")

	fs.IntVar(&cfg.Undo, "undo", cfg.Undo, "undo this many saved edits")
	fs.IntVar(&cfg.Redo, "redo", cfg.Redo, "redo this many undone edits")
	fs.BoolVar(&cfg.Reset, "reset", cfg.Reset, "mark every number available")
	fs.StringVar(&cfg.Import, "import", cfg.Import, "CSV or XLSX file of sold numbers")
	fs.StringVar(&cfg.Mark, "mark", cfg.Mark, "numbers to mark sold (comma or space separated)")
	fs.StringVar(&cfg.Unmark, "unmark", cfg.Unmark, "numbers to mark available")
	fs.StringVar(&cfg.Range, "range", cfg.Range, "ranges to mark sold (e.g. 10-19,30-35)")
	fs.StringVar(&cfg.Toggle, "toggle", cfg.Toggle, "numbers to toggle")

	fs.StringVar(&cfg.PNG, "png", cfg.PNG, "poster output path (default <out-dir>/<prefix>_<date>.png)")
	fs.BoolVar(&cfg.NoPNG, "no-png", cfg.NoPNG, "skip writing the poster PNG")
	fs.StringVar(&cfg.PDF, "pdf", cfg.PDF, "write a PDF with the poster and sales summary")
	fs.StringVar(&cfg.Tickets, "tickets", cfg.Tickets, "write a PDF of QR ticket stubs")
	fs.StringVar(&cfg.QR, "qr", cfg.QR, "write a QR code PNG of the share link")
	fs.StringVar(&cfg.XLSX, "xlsx", cfg.XLSX, "write an XLSX sales sheet")
	fs.StringVar(&cfg.DXF, "dxf", cfg.DXF, "write a DXF drawing of the grid")
	fs.StringVar(&cfg.Backup, "backup", cfg.Backup, "write a backup of config, presets and board")
	fs.StringVar(&cfg.SavePreset, "save-preset", cfg.SavePreset, "save the current branding as a preset")
	fs.BoolVar(&cfg.SaveConfig, "save-config", cfg.SaveConfig, "save the effective app config")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var now = time.Now

// Run executes the rifas command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Undo < 0 || cfg.Redo < 0 {
		return errors.New("undo and redo counts must not be negative")
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	poster.SetLogger(logger)
	defer poster.SetLogger(nil)

	today := now()
	app, presets, err := loadSettings(cfg)
	if err != nil {
		return err
	}

	b, history, err := loadBoard(cfg, model.DefaultTitle(today))
	if err != nil {
		return err
	}
	b, err = applyEdits(cfg, b, history, logger)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	link, err := model.ShareURL(app.ShareBaseURL, b.Encode())
	if err != nil {
		return err
	}

	pcfg, err := poster.ConfigFromApp(app)
	if err != nil {
		return fmt.Errorf("poster config: %w", err)
	}
	assets := poster.LoadAssets(app.LogoPath, app.FontPath, app.BoldFontPath)
	if cfg.GoFonts {
		assets = assets.WithGoFonts()
	}
	renderer, err := poster.New(pcfg, assets)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	headline := model.PosterTitle(b.Title, app.BrandName)
	png, err := renderer.Render(b, headline)
	if err != nil {
		return fmt.Errorf("render poster: %w", err)
	}
	summary := model.Summarize(b, app.TicketPrice)

	var written []string
	write := func(path string, fn func(string) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(path); err != nil {
			return err
		}
		logger.Debug("wrote file", "path", path)
		written = append(written, path)
		return nil
	}

	if !cfg.NoPNG {
		path := cfg.PNG
		if path == "" {
			path = filepath.Join(cfg.OutDir, model.FileName(app.FilePrefix, today, "png"))
		}
		if err := write(path, func(p string) error {
			if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
				return err
			}
			return os.WriteFile(p, png, 0644)
		}); err != nil {
			return fmt.Errorf("write poster: %w", err)
		}
	}

	if cfg.PDF != "" {
		doc := export.PosterDocument{
			Title:    headline,
			Brand:    app.BrandName,
			PNG:      png,
			Board:    b,
			Summary:  summary,
			Currency: app.Currency,
			ShareURL: link,
		}
		if err := write(cfg.PDF, func(p string) error { return export.ExportPDF(p, doc) }); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
	}
	if cfg.Tickets != "" {
		if err := write(cfg.Tickets, func(p string) error {
			return export.ExportTickets(p, b, link, export.TicketsAll)
		}); err != nil {
			return fmt.Errorf("export tickets: %w", err)
		}
	}
	if cfg.QR != "" {
		if err := write(cfg.QR, func(p string) error { return export.WriteShareQR(p, link, 512) }); err != nil {
			return fmt.Errorf("export qr: %w", err)
		}
	}
	if cfg.XLSX != "" {
		if err := write(cfg.XLSX, func(p string) error {
			return export.ExportXLSX(p, b, summary, app.Currency)
		}); err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
	}
	if cfg.DXF != "" {
		geo, err := renderer.Layout(headline)
		if err != nil {
			return err
		}
		_, height := renderer.Size()
		if err := write(cfg.DXF, func(p string) error {
			return export.ExportDXF(p, b, geo, float64(height))
		}); err != nil {
			return fmt.Errorf("export dxf: %w", err)
		}
	}

	if cfg.StatePath != "" {
		if err := project.SaveState(cfg.StatePath, b, history); err != nil {
			return err
		}
	}
	if cfg.SavePreset != "" {
		p := model.NewBrandPreset(cfg.SavePreset, app)
		presets.Add(p)
		if err := project.SavePresets(presetsPath(cfg), presets); err != nil {
			return fmt.Errorf("save presets: %w", err)
		}
		app.PresetID = presets.FindByName(cfg.SavePreset).ID
	}
	if cfg.SaveConfig {
		if err := project.SaveAppConfig(configPath(cfg), app); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	if cfg.Backup != "" {
		if err := write(cfg.Backup, func(p string) error {
			return project.ExportAllData(p, app, presets, b)
		}); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
	}

	printSummary(out, b, summary, app.Currency, link, written)
	return nil
}

func configPath(cfg Config) string {
	if cfg.ConfigPath != "" {
		return cfg.ConfigPath
	}
	return project.DefaultConfigPath()
}

func presetsPath(cfg Config) string {
	if cfg.PresetsPath != "" {
		return cfg.PresetsPath
	}
	return project.DefaultPresetsPath()
}

// loadSettings reads the app config and presets, then layers the selected
// preset and the command-line overrides on top.
func loadSettings(cfg Config) (model.AppConfig, model.PresetStore, error) {
	app, err := project.LoadAppConfig(configPath(cfg))
	if err != nil {
		return model.AppConfig{}, model.PresetStore{}, fmt.Errorf("load config: %w", err)
	}
	presets, err := project.LoadPresets(presetsPath(cfg))
	if err != nil {
		return model.AppConfig{}, model.PresetStore{}, fmt.Errorf("load presets: %w", err)
	}

	if cfg.Preset != "" {
		p := presets.FindByName(cfg.Preset)
		if p == nil {
			p = presets.FindByID(cfg.Preset)
		}
		if p == nil {
			return model.AppConfig{}, model.PresetStore{}, fmt.Errorf("unknown preset %q", cfg.Preset)
		}
		app.ApplyPreset(*p)
	}

	if cfg.LogoPath != "" {
		app.LogoPath = cfg.LogoPath
	}
	if cfg.FontPath != "" {
		app.FontPath = cfg.FontPath
	}
	if cfg.BoldFontPath != "" {
		app.BoldFontPath = cfg.BoldFontPath
	}
	if cfg.TicketPrice > 0 {
		app.TicketPrice = cfg.TicketPrice
	}
	if cfg.ShareBaseURL != "" {
		app.ShareBaseURL = cfg.ShareBaseURL
	}
	return app, presets, nil
}

// loadBoard builds the starting board: the state file if it exists, then
// a share link, then explicit title and sold overrides. Each override that
// changes the loaded board is recorded so a later run can undo it.
func loadBoard(cfg Config, defaultTitle string) (*model.Board, *model.History, error) {
	b := model.NewBoard(defaultTitle)
	history := model.NewHistory()

	if cfg.StatePath != "" {
		loaded, h, err := project.LoadState(cfg.StatePath, defaultTitle)
		switch {
		case err == nil:
			b, history = loaded, h
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, nil, err
		}
	}

	if cfg.Link != "" {
		st, err := model.ParseShareURL(cfg.Link, defaultTitle)
		if err != nil {
			return nil, nil, err
		}
		before := model.MakeSnapshot(b, "link")
		b = st.Board(defaultTitle)
		record(history, before, b)
	}
	if cfg.Title != "" {
		before := model.MakeSnapshot(b, "title "+cfg.Title)
		b.Title = cfg.Title
		record(history, before, b)
	}
	if cfg.Sold != "" {
		before := model.MakeSnapshot(b, "sold "+cfg.Sold)
		b.Reset()
		b.MarkLabels(model.DecodeSold(cfg.Sold), model.Sold)
		record(history, before, b)
	}
	return b, history, nil
}

// record pushes before onto h when b no longer matches it. Edits that
// change nothing leave the redo stack intact.
func record(h *model.History, before model.Snapshot, b *model.Board) {
	if b.Encode() != before.State {
		h.Push(before)
	}
}

// applyEdits runs the requested edits in order, recording a snapshot before
// each one that changes the board so later runs can undo it.
func applyEdits(cfg Config, b *model.Board, h *model.History, logger *slog.Logger) (*model.Board, error) {
	for i := 0; i < cfg.Undo; i++ {
		snap, ok := h.Undo(model.MakeSnapshot(b, "undo"))
		if !ok {
			logger.Warn("nothing left to undo", "undone", i)
			break
		}
		logger.Info("undo", "edit", snap.Label)
		b = snap.Restore()
	}
	for i := 0; i < cfg.Redo; i++ {
		snap, ok := h.Redo(model.MakeSnapshot(b, "redo"))
		if !ok {
			logger.Warn("nothing left to redo", "redone", i)
			break
		}
		logger.Info("redo", "edit", snap.Label)
		b = snap.Restore()
	}

	if cfg.Reset {
		before := model.MakeSnapshot(b, "reset")
		b.Reset()
		record(h, before, b)
	}

	if cfg.Import != "" {
		res := importer.ImportFile(cfg.Import)
		for _, w := range res.Warnings {
			logger.Warn("import", "file", cfg.Import, "msg", w)
		}
		for _, e := range res.Errors {
			logger.Error("import", "file", cfg.Import, "msg", e)
		}
		if len(res.Sold) == 0 && len(res.Errors) > 0 {
			return nil, fmt.Errorf("import %s: %s", cfg.Import, res.Errors[0])
		}
		before := model.MakeSnapshot(b, "import "+filepath.Base(cfg.Import))
		n := b.MarkLabels(res.Sold, model.Sold)
		record(h, before, b)
		logger.Info("imported sold numbers", "file", cfg.Import, "found", len(res.Sold), "changed", n)
	}

	if cfg.Mark != "" {
		before := model.MakeSnapshot(b, "mark "+cfg.Mark)
		b.MarkLabels(model.DecodeSold(cfg.Mark), model.Sold)
		record(h, before, b)
	}
	if cfg.Unmark != "" {
		before := model.MakeSnapshot(b, "unmark "+cfg.Unmark)
		b.MarkLabels(model.DecodeSold(cfg.Unmark), model.Available)
		record(h, before, b)
	}

	if cfg.Range != "" {
		ranges, err := parseRanges(cfg.Range)
		if err != nil {
			return nil, err
		}
		before := model.MakeSnapshot(b, "range "+cfg.Range)
		for _, r := range ranges {
			b.MarkRange(r[0], r[1], model.Sold)
		}
		record(h, before, b)
	}

	if cfg.Toggle != "" {
		labels := splitList(cfg.Toggle)
		for _, l := range labels {
			if _, ok := model.ParseLabel(l); !ok {
				return nil, fmt.Errorf("toggle: %w: %q", model.ErrInvalidLabel, l)
			}
		}
		before := model.MakeSnapshot(b, "toggle "+cfg.Toggle)
		for _, l := range labels {
			if err := b.Toggle(l); err != nil {
				return nil, err
			}
		}
		record(h, before, b)
	}
	return b, nil
}

// parseRanges reads "10-19,30-35". Bounds are clamped by MarkRange.
func parseRanges(s string) ([][2]int, error) {
	var out [][2]int
	for _, part := range splitList(s) {
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			hi = lo
		}
		first, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		last, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		out = append(out, [2]int{first, last})
	}
	return out, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func printSummary(w io.Writer, b *model.Board, s model.SalesSummary, currency, link string, written []string) {
	fmt.Fprintf(w, "Raffle: %s\n", b.Title)
	fmt.Fprintf(w, "Sold: %d/%d (%.0f%%)\n", s.Sold, model.SlotCount, s.PercentSold)
	if sold := model.EncodeSold(b.SoldLabels()); sold != "" {
		fmt.Fprintf(w, "Numbers: %s\n", sold)
	}
	if s.TicketPrice > 0 {
		fmt.Fprintf(w, "Collected: %s%.2f of %s%.2f\n", currency, s.Collected, currency, s.PotentialTotal)
	}
	fmt.Fprintf(w, "Share: %s\n", link)
	for _, p := range written {
		fmt.Fprintf(w, "Wrote: %s\n", p)
	}
}
