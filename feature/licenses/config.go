package licenses

// Config holds the vendor CLI tools used to query live license usage.
type Config struct {
	// LmutilPath is the FlexLM lmutil binary.
	LmutilPath string `mapstructure:"lmutil_path" default:"/usr/local/bin/lmutil"`
	// RlmutilPath is the RLM rlmutil binary.
	RlmutilPath string `mapstructure:"rlmutil_path" default:"/usr/local/bin/rlmutil"`
	// LmxendutilPath is the LM-X lmxendutil binary.
	LmxendutilPath string `mapstructure:"lmxendutil_path" default:"/usr/local/bin/lmxendutil"`
	// LstcQrunPath is the LS-DYNA lstc_qrun binary.
	LstcQrunPath string `mapstructure:"lstc_qrun_path" default:"/usr/local/bin/lstc_qrun"`
	// OlixtoolPath is the OLicense olixtool binary.
	OlixtoolPath string `mapstructure:"olixtool_path" default:"/usr/local/bin/olixtool"`
	// DslicsrvPath is the DSLS DSLicSrv binary.
	DslicsrvPath string `mapstructure:"dslicsrv_path" default:"/usr/local/bin/DSLicSrv"`
	// TimeoutSeconds bounds every vendor CLI invocation.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
