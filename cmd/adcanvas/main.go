// adcanvas — Marketing visual composition.
//
// Usage:
//
//	adcanvas render -o <file> --campaign <path> [--settings <path>] [options]
//	adcanvas analyze --src <image> [--ai --vision-url URL]
//	adcanvas serve [--addr :8080]
//	adcanvas sizes
//	adcanvas init
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aimagicbox/adcanvas/clients/server"
	"github.com/aimagicbox/adcanvas/pkg/compose"
	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
	"github.com/aimagicbox/adcanvas/pkg/fonts"
	"github.com/aimagicbox/adcanvas/pkg/layout"
	"github.com/aimagicbox/adcanvas/pkg/media"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "analyze":
		if err := runAnalyze(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "sizes":
		runSizes()
	case "init":
		if err := runInit(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		fatal(fmt.Errorf("unknown command %q", os.Args[1]))
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newRenderer assembles the font manager and media resolver shared by the
// render and serve commands. Every .ttf in fontDir registers under its
// base filename.
func newRenderer(fontDir string, log *slog.Logger) (*compose.Renderer, *media.Resolver, error) {
	fm, err := fonts.NewManager()
	if err != nil {
		return nil, nil, fmt.Errorf("fonts: %w", err)
	}
	if fontDir != "" {
		entries, err := os.ReadDir(fontDir)
		if err != nil {
			return nil, nil, fmt.Errorf("read font dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ttf") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(fontDir, e.Name()))
			if err != nil {
				return nil, nil, fmt.Errorf("read font %s: %w", e.Name(), err)
			}
			family := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if err := fm.Register(family, data); err != nil {
				log.Warn("skipping font", "file", e.Name(), "error", err)
			}
		}
	}
	mr := &media.Resolver{}
	return compose.New(fm, mr, log), mr, nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)

	var (
		output       string
		campaignPath string
		settingsPath string
		brandPath    string
		sizeName     string
		width        int
		height       int
		plan         string
		imageID      string
		fontDir      string
		thumbnail    bool
		verbose      bool
	)

	fs.StringVar(&output, "o", "", "Output file path (.png or .jpg)")
	fs.StringVar(&output, "output", "", "Output file path (.png or .jpg)")
	fs.StringVar(&campaignPath, "campaign", "", "Path to campaign JSON")
	fs.StringVar(&settingsPath, "settings", "", "Path to design settings JSON (optional)")
	fs.StringVar(&brandPath, "brand", "", "Path to brand assets JSON (optional)")
	fs.StringVar(&sizeName, "size", "square", "Project size preset (see 'adcanvas sizes')")
	fs.IntVar(&width, "w", 0, "Custom width in pixels")
	fs.IntVar(&height, "h", 0, "Custom height in pixels")
	fs.StringVar(&plan, "plan", string(design.PlanStarter), "Plan tier: Starter, Creator or ProFusion")
	fs.StringVar(&imageID, "image", "", "Campaign image ID (default: first image)")
	fs.StringVar(&fontDir, "fonts", "", "Directory of extra .ttf fonts")
	fs.BoolVar(&thumbnail, "thumbnail", false, "Emit a 400px thumbnail data URI to stdout instead of a file")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if campaignPath == "" {
		printUsage()
		return fmt.Errorf("--campaign is required")
	}
	if output == "" && !thumbnail {
		printUsage()
		return fmt.Errorf("output file is required (-o)")
	}

	log := newLogger(verbose)

	campaign, warnings, err := design.LoadCampaign(campaignPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	settings := design.Canonical()
	if settingsPath != "" {
		settings, err = design.LoadSettings(settingsPath)
		if err != nil {
			return err
		}
	}

	var brand design.BrandAssets
	if brandPath != "" {
		data, err := os.ReadFile(brandPath)
		if err != nil {
			return fmt.Errorf("read brand: %w", err)
		}
		if err := json.Unmarshal(data, &brand); err != nil {
			return fmt.Errorf("parse brand JSON: %w", err)
		}
		for _, w := range design.ValidateBrand(&brand) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}

	size, err := design.SizeByName(sizeName, width, height)
	if err != nil {
		return err
	}

	img, ok := pickImage(*campaign, imageID)
	if !ok {
		return fmt.Errorf("campaign has no image %q", imageID)
	}

	renderer, _, err := newRenderer(fontDir, log)
	if err != nil {
		return err
	}

	req := compose.Request{
		Image:    img,
		Campaign: *campaign,
		Design:   design.EffectiveDesign(settings, img, campaign.Headline),
		Brand:    brand,
		Plan:     design.Plan(plan),
	}

	ctx := context.Background()
	if thumbnail {
		fmt.Println(renderer.Thumbnail(ctx, size, req))
		return nil
	}

	fmt.Printf("Rendering %s (%dx%d)\n", campaign.Name, size.Width, size.Height)
	out := renderer.Render(ctx, size.Width, size.Height, req)
	if err := encode.WriteImage(output, out); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func pickImage(c design.Campaign, id string) (design.CampaignImage, bool) {
	if id == "" {
		if len(c.Images) == 0 {
			return design.CampaignImage{}, false
		}
		return c.Images[0], true
	}
	for _, img := range c.Images {
		if img.ID == id {
			return img, true
		}
	}
	return design.CampaignImage{}, false
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)

	var (
		src       string
		useAI     bool
		visionURL string
		visionKey string
		verbose   bool
	)
	fs.StringVar(&src, "src", "", "Image path, URL or data URI")
	fs.BoolVar(&useAI, "ai", false, "Prefer the vision service over grid analysis")
	fs.StringVar(&visionURL, "vision-url", os.Getenv("ADCANVAS_VISION_URL"), "Vision service base URL")
	fs.StringVar(&visionKey, "vision-key", os.Getenv("ADCANVAS_VISION_KEY"), "Vision service API key")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if src == "" {
		return fmt.Errorf("--src is required")
	}

	log := newLogger(verbose)
	analyzer := &layout.Analyzer{Media: &media.Resolver{}, Log: log}
	if visionURL != "" {
		analyzer.Vision = &layout.VisionClient{BaseURL: visionURL, APIKey: visionKey}
	}

	ov, err := analyzer.Analyze(context.Background(), src, useAI)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(ov)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var (
		addr      string
		fontDir   string
		visionURL string
		visionKey string
		verbose   bool
	)
	fs.StringVar(&addr, "addr", ":8080", "Listen address")
	fs.StringVar(&fontDir, "fonts", "", "Directory of extra .ttf fonts")
	fs.StringVar(&visionURL, "vision-url", os.Getenv("ADCANVAS_VISION_URL"), "Vision service base URL")
	fs.StringVar(&visionKey, "vision-key", os.Getenv("ADCANVAS_VISION_KEY"), "Vision service API key")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := newLogger(verbose)
	renderer, mr, err := newRenderer(fontDir, log)
	if err != nil {
		return err
	}

	analyzer := &layout.Analyzer{Media: mr, Log: log}
	if visionURL != "" {
		analyzer.Vision = &layout.VisionClient{BaseURL: visionURL, APIKey: visionKey}
	}

	return server.New(renderer, analyzer, log).ListenAndServe(addr)
}

func runSizes() {
	fmt.Println("Available project sizes:")
	for _, name := range sizeNames() {
		s := design.Sizes[name]
		fmt.Printf("  %-16s %dx%d\n", name, s.Width, s.Height)
	}
}

// sizeNames returns the preset names in stable alphabetical order.
func sizeNames() []string {
	names := make([]string, 0, len(design.Sizes))
	for name := range design.Sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var campaignOut, settingsOut string
	fs.StringVar(&campaignOut, "campaign", "campaign.json", "Output path for sample campaign")
	fs.StringVar(&settingsOut, "settings", "settings.json", "Output path for sample settings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(campaignOut, []byte(exampleCampaign), 0644); err != nil {
		return fmt.Errorf("write campaign: %w", err)
	}
	if err := os.WriteFile(settingsOut, []byte(exampleSettings), 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	fmt.Printf("Created: %s, %s\n", campaignOut, settingsOut)
	fmt.Println("Run: adcanvas render -o output.png --campaign campaign.json --settings settings.json")
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `adcanvas — Marketing visual composition

Usage:
  adcanvas render -o <file> --campaign <path> [--settings <path>] [--brand <path>]
                  [--size square] [--plan Starter] [--image ID] [--thumbnail]
  adcanvas analyze --src <image> [--ai --vision-url URL]
  adcanvas serve [--addr :8080] [--fonts DIR]
  adcanvas sizes
  adcanvas init

Commands:
  render    Compose a campaign image into a finished visual
  analyze   Suggest text placement and colors for a background image
  serve     Start the HTTP API
  sizes     List project size presets
  init      Write sample campaign and settings files
`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
