package cfg

// Cfg holds the fully resolved run configuration. It is built once by
// Load and passed explicitly to each component; nothing reads it back
// from ambient state.
type Cfg struct {
	// Required positional parameters
	OutputFile   string
	Days         int
	Title        string
	Description  string
	PageURL      string
	DownloadsURL string
	ImageURL     string
	TTL          int
	WebMaster    string

	// Options
	AltDirs     []string
	MediaKinds  []string
	ForceMP3    bool
	CacheDir    string
	HistoryFile string
	Enrich      bool
	CatalogURL  string
	Verbose     bool

	Version string
}
