package cfg

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	AltDirs     string `short:"a" long:"alt-dir" description:"Alternative download directories to search when the recorded path is missing; separate multiple with a comma, e.g. /path1,/path2"`
	MediaKinds  string `short:"m" long:"media-type" description:"Only include records of these get_iplayer media types; separate multiple with a comma, e.g. tv,radio"`
	ForceMP3    bool   `long:"mp3" description:"Assume m4a downloads have been transcoded to mp3 and look for the mp3 file instead"`
	CacheDir    string `long:"cache-dir" env:"GENRSS_CACHE_DIR" description:"Directory holding the programme metadata cache (default: ~/.get_iplayer/rss_cache)"`
	HistoryFile string `long:"history-file" env:"GENRSS_HISTORY_FILE" description:"Path to the get_iplayer download_history file (default: ~/.get_iplayer/download_history)"`
	Enrich      bool   `short:"e" long:"enrich" description:"Fetch richer programme metadata from the remote catalog"`
	CatalogURL  string `long:"catalog-url" env:"GENRSS_CATALOG_URL" default:"https://www.bbc.co.uk/programmes" description:"Base URL of the programme metadata catalog"`
	Verbose     bool   `short:"v" long:"verbose" description:"Enable debug logging"`

	Args struct {
		OutputFile   string `positional-arg-name:"OUTPUT" description:"Location to write the unified RSS file"`
		Days         int    `positional-arg-name:"DAYS" description:"Number of past days to include in the feed"`
		Title        string `positional-arg-name:"TITLE" description:"Title of the RSS feed"`
		Description  string `positional-arg-name:"DESCRIPTION" description:"Description of the RSS feed"`
		PageURL      string `positional-arg-name:"PAGE_URL" description:"URL of the feed HTML page, e.g. https://example.com/rss/index.html"`
		DownloadsURL string `positional-arg-name:"DOWNLOADS_URL" description:"URL under which the media files are served, e.g. https://example.com/rss/downloads/"`
		ImageURL     string `positional-arg-name:"IMAGE_URL" description:"URL of the feed image"`
		TTL          int    `positional-arg-name:"TTL" description:"Feed time-to-live in minutes"`
		WebMaster    string `positional-arg-name:"WEBMASTER" description:"Webmaster contact details, e.g. me@example.com"`
	} `positional-args:"yes" required:"yes"`
}

// Load parses the given command-line arguments. It returns (nil, nil)
// when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)
	parser.Usage = "[OPTIONS] OUTPUT DAYS TITLE DESCRIPTION PAGE_URL DOWNLOADS_URL IMAGE_URL TTL WEBMASTER"

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		OutputFile:   raw.Args.OutputFile,
		Days:         raw.Args.Days,
		Title:        raw.Args.Title,
		Description:  raw.Args.Description,
		PageURL:      raw.Args.PageURL,
		DownloadsURL: raw.Args.DownloadsURL,
		ImageURL:     raw.Args.ImageURL,
		TTL:          raw.Args.TTL,
		WebMaster:    raw.Args.WebMaster,
		AltDirs:      splitList(raw.AltDirs),
		MediaKinds:   splitList(raw.MediaKinds),
		ForceMP3:     raw.ForceMP3,
		CacheDir:     raw.CacheDir,
		HistoryFile:  raw.HistoryFile,
		Enrich:       raw.Enrich,
		CatalogURL:   strings.TrimSuffix(raw.CatalogURL, "/"),
		Verbose:      raw.Verbose,
		Version:      GetVersion(),
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) applyDefaults() error {
	if c.HistoryFile == "" || c.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		if c.HistoryFile == "" {
			c.HistoryFile = filepath.Join(home, ".get_iplayer", "download_history")
		}
		if c.CacheDir == "" {
			c.CacheDir = filepath.Join(home, ".get_iplayer", "rss_cache")
		}
	}

	// Item URLs are formed by appending the file name
	if !strings.HasSuffix(c.DownloadsURL, "/") {
		c.DownloadsURL += "/"
	}

	return nil
}

func (c *Cfg) validate() error {
	if c.Days < 0 {
		return fmt.Errorf("number of past days must be non-negative, got %d", c.Days)
	}
	if c.TTL < 0 {
		return fmt.Errorf("TTL must be non-negative, got %d", c.TTL)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
