package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/rimtoken/go-dashboard/components/dashboard"
	"github.com/rimtoken/go-dashboard/components/dashboard/voice"
	"github.com/rimtoken/go-dashboard/pkg/speech"
)

type cli struct {
	Say      sayCmd      `cmd:"" help:"Run voice command transcripts against an in-memory dashboard."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget catalog entry to a manifest file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Dashboard utility for voice transcript simulation and catalog manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type sayCmd struct {
	Language    string   `default:"ar-SA" help:"Recognition language tag (ar-SA, en-US, ...)."`
	User        string   `default:"demo" help:"User id whose dashboard the transcripts mutate."`
	Transcripts []string `arg:"" required:"" help:"Transcripts to interpret, in order."`
}

func (cmd *sayCmd) Run(ctx context.Context) error {
	store, err := dashboard.NewStore(dashboard.StoreOptions{
		UserID:  cmd.User,
		Layouts: dashboard.NewMemoryLayoutStore(),
	})
	if err != nil {
		return err
	}
	if _, err := store.Load(ctx); err != nil {
		return err
	}
	interpreter, err := voice.NewInterpreter(store, nil)
	if err != nil {
		return err
	}
	engine := speech.NewScriptedEngine()
	session, err := voice.NewSession(voice.SessionOptions{
		Engine:      engine,
		Interpreter: interpreter,
		Language:    cmd.Language,
		OnResult: func(result voice.Result) {
			fmt.Fprintf(os.Stdout, "%s\n  %s\n", result.Title, result.Detail)
		},
	})
	if err != nil {
		return err
	}

	for _, transcript := range cmd.Transcripts {
		fmt.Fprintf(os.Stdout, "> %s\n", transcript)
		if err := session.Start(ctx); err != nil {
			return err
		}
		engine.Say(transcript)
	}

	fmt.Fprintln(os.Stdout, "\nwidgets:")
	for i, widget := range store.Widgets() {
		fmt.Fprintf(os.Stdout, "  %d. %s (%s, %s)\n", i+1, widget.Title, widget.Type, widget.Size)
	}
	return nil
}

type scaffoldCmd struct {
	Type          string   `help:"Widget type slug (defaults to the kebab-case of --title-en)."`
	Title         string   `required:"" help:"Arabic display title."`
	TitleEn       string   `required:"" name:"title-en" help:"English display title."`
	Description   string   `help:"Arabic description shown in the widget picker."`
	DescriptionEn string   `name:"description-en" help:"English description."`
	DefaultSize   string   `default:"medium" help:"Default size (small, medium, large, full)."`
	ManifestPath  string   `required:"" type:"path" help:"Path to the catalog manifest YAML file to update."`
	Tag           []string `help:"Optional tags to include in the manifest."`
	Maintainer    []string `help:"Maintainers to record in the manifest."`
	Overwrite     bool     `help:"Replace an existing entry with the same type."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	widgetType := cmd.Type
	if widgetType == "" {
		widgetType = strcase.ToKebab(cmd.TitleEn)
	}
	size := dashboard.WidgetSize(cmd.DefaultSize)
	if !dashboard.ValidSize(size) {
		return fmt.Errorf("dashctl: invalid default size %q", cmd.DefaultSize)
	}

	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("dashctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	entry := dashboard.ManifestWidget{
		Entry: dashboard.CatalogEntry{
			Type:                 dashboard.WidgetType(widgetType),
			Title:                cmd.Title,
			TitleLocalized:       map[string]string{"en": cmd.TitleEn},
			Description:          cmd.Description,
			DescriptionLocalized: localizedOrNil(cmd.DescriptionEn),
			DefaultSize:          size,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	replaced := false
	for idx := range doc.Widgets {
		if doc.Widgets[idx].Entry.Type == entry.Entry.Type {
			if !cmd.Overwrite {
				return fmt.Errorf("dashctl: manifest already defines widget %s (use --overwrite to replace)", widgetType)
			}
			doc.Widgets[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Entry.Type < doc.Widgets[j].Entry.Type
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", widgetType, manifestPath)
	return nil
}

func localizedOrNil(english string) map[string]string {
	english = strings.TrimSpace(english)
	if english == "" {
		return nil
	}
	return map[string]string{"en": english}
}

func loadOrInitManifest(path string) (*dashboard.CatalogManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.CatalogManifest{
				Version: dashboard.ManifestVersion,
				Widgets: []dashboard.ManifestWidget{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("dashctl: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifest(path string, doc *dashboard.CatalogManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dashctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("dashctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("dashctl: write manifest: %w", err)
	}
	return nil
}
