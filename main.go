// artigram: turn a news article into a ready-to-post Instagram asset.
//
// From a URL:
//
//	artigram [options] <URL>
//
// From local article text, or compose-only with an explicit headline:
//
//	artigram [options] -text article.txt
//	artigram [options] -headline "..." -bg background.png
//
// Output is a 1079x1345 PNG plus the post caption on stdout.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// logOut is the writer for informational/progress output.
// In silent mode it is set to io.Discard so only errors reach the user.
var logOut io.Writer = os.Stderr

// cliConfig holds parsed command-line options.
type cliConfig struct {
	output      string
	textPath    string
	headline    string
	category    string
	lang        string
	bgPath      string
	logoPath    string
	captionPath string
	configPath  string
	qr          bool
	timeout     time.Duration
	userAgent   string
	args        []string
}

// gatherText obtains the article text: from a URL argument, from a local
// file ("-" for stdin), or empty in compose-only mode. Also returns the
// source URL for the optional QR layer.
func gatherText(cfg cliConfig) (text, sourceURL string, err error) {
	if cfg.textPath != "" {
		var data []byte
		if cfg.textPath == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(cfg.textPath)
		}
		if err != nil {
			return "", "", fmt.Errorf("reading article text: %w", err)
		}
		return strings.TrimSpace(string(data)), "", nil
	}

	if len(cfg.args) == 1 {
		htmlBytes, pageURL, err := fetchHTML(cfg.args[0], cfg.timeout, cfg.userAgent)
		if err != nil {
			return "", "", err
		}
		content, meta, err := extractArticle(htmlBytes, pageURL)
		if err != nil {
			return "", "", err
		}
		fmt.Fprintf(logOut, "Title: %s\n", meta.Title)
		text, err := articleText(content)
		if err != nil {
			return "", "", err
		}
		return text, cfg.args[0], nil
	}

	return "", "", nil
}

// run executes the main application logic, returning any error.
func run(cfg cliConfig) error {
	if len(cfg.args) > 1 {
		return fmt.Errorf("at most one URL argument expected")
	}

	conf, err := loadConfig(cfg.configPath)
	if err != nil {
		return err
	}

	text, sourceURL, err := gatherText(cfg)
	if err != nil {
		return err
	}
	if text == "" && cfg.headline == "" {
		return fmt.Errorf("nothing to compose: provide a URL, -text, or -headline")
	}

	var content postContent
	if text != "" {
		content = deriveContent(text, &conf.Content, cfg.lang)
	}
	if cfg.headline != "" {
		content.Bullet = cfg.headline
	}
	if cfg.category != "" {
		if !isAllowedCategory(cfg.category) {
			fmt.Fprintf(logOut, "Warning: %q is not a known category key\n", cfg.category)
		}
		content.Category = cfg.category
	}

	// Background precedence: a user-supplied file, then an AI-generated
	// photo when a key is configured, then the seeded placeholder. Only
	// a named file that fails to open is fatal.
	var background image.Image
	if cfg.bgPath != "" {
		background, err = imaging.Open(cfg.bgPath)
		if err != nil {
			return fmt.Errorf("opening background image: %w", err)
		}
	} else if key := apiKey(); key != "" {
		background, err = generateBackground(content, &conf.Content, key)
		if err != nil {
			fmt.Fprintf(logOut, "Warning: background generation failed, using placeholder: %v\n", err)
			background = nil
		}
	}
	if background == nil {
		fmt.Fprintf(logOut, "No background image, generating placeholder\n")
		background = generatePlaceholder(content.Bullet, canvasWidth, canvasHeight, time.Now())
	}

	// Logo is optional; failing to read it skips the layer.
	var logo image.Image
	if cfg.logoPath != "" {
		logo, err = imaging.Open(cfg.logoPath)
		if err != nil {
			fmt.Fprintf(logOut, "Warning: logo %s not used: %v\n", cfg.logoPath, err)
			logo = nil
		}
	}

	post := postSpec{
		Headline:    content.Bullet,
		CategoryKey: content.Category,
		Locale:      cfg.lang,
		Logo:        logo,
		Now:         time.Now(),
	}
	if cfg.qr && sourceURL != "" {
		post.QRText = sourceURL
	}

	final, err := composePost(background, post, conf)
	if err != nil {
		return err
	}

	if err := savePNG(final, cfg.output); err != nil {
		return err
	}
	fmt.Fprintf(logOut, "✓ %s\n", cfg.output)

	caption := buildCaption(content)
	if cfg.captionPath != "" {
		if err := os.WriteFile(cfg.captionPath, []byte(caption+"\n"), 0644); err != nil {
			return fmt.Errorf("writing caption: %w", err)
		}
	} else if caption != "" {
		fmt.Println(caption)
	}
	return nil
}

// savePNG writes the final image to path.
func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func main() {
	output := flag.String("o", "post.png", "Output PNG file")
	textPath := flag.String("text", "", "Read article text from file ('-' for stdin) instead of a URL")
	headline := flag.String("headline", "", "Override the derived headline")
	category := flag.String("category", "", "Override the derived category key")
	lang := flag.String("lang", "fr", "Content/date language code (e.g. en, fr)")
	bgPath := flag.String("bg", "", "Background image file (default: generated placeholder)")
	logoPath := flag.String("logo", "", "Logo image file to overlay (transparent PNG recommended)")
	captionPath := flag.String("caption", "", "Write the caption to this file instead of stdout")
	configPath := flag.String("config", "artigram.toml", "Layout config file (TOML)")
	qr := flag.Bool("qr", false, "Add a QR code of the article URL")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP fetch timeout")
	userAgent := flag.String("user-agent", defaultUA, "HTTP User-Agent header")
	silent := flag.Bool("silent", false, "Suppress all output except errors and the caption")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: artigram [options] <URL>\n")
		fmt.Fprintf(os.Stderr, "       artigram [options] -text article.txt\n")
		fmt.Fprintf(os.Stderr, "       artigram [options] -headline \"...\" -bg background.png\n\n")
		fmt.Fprintf(os.Stderr, "Turn a news article into a ready-to-post Instagram asset.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *silent {
		logOut = io.Discard
	}

	cfg := cliConfig{
		output:      *output,
		textPath:    *textPath,
		headline:    *headline,
		category:    *category,
		lang:        *lang,
		bgPath:      *bgPath,
		logoPath:    *logoPath,
		captionPath: *captionPath,
		configPath:  *configPath,
		qr:          *qr,
		timeout:     *timeout,
		userAgent:   *userAgent,
		args:        flag.Args(),
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
