package cfg

type Cfg struct {
	// Content configuration
	ContentDir    string
	ImportFeedURL string

	// Application configuration
	Port            string
	BaseUrl         string
	WorkerCount     int
	RefreshInterval int
	APIAccessKey    string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
