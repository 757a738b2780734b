package config

const (
	defaultInputDir           = "~/.local/share/pricewatch/snapshots"
	defaultDataDir            = "~/.local/share/pricewatch/data"
	defaultLogDir             = "~/.local/share/pricewatch/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultImageFetchTimeout  = 10
	defaultImageQuality       = 85
	defaultImageMaxFetchBytes = 16 << 20
	defaultStorageBucket      = "ProductsImages"
	defaultStorageDir         = "~/.local/share/pricewatch/images"
)

// Storage backend selectors.
const (
	StorageBackendS3  = "s3"
	StorageBackendDir = "dir"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir: defaultInputDir,
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
		},
		Images: Images{
			Enabled:             true,
			FetchTimeoutSeconds: defaultImageFetchTimeout,
			Quality:             defaultImageQuality,
			MaxFetchBytes:       defaultImageMaxFetchBytes,
		},
		Storage: Storage{
			Backend: StorageBackendDir,
			Dir:     defaultStorageDir,
			Bucket:  defaultStorageBucket,
			UseSSL:  true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
