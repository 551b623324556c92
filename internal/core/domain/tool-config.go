package domain

// ToolConfig describes how to reach one DPM tool deployment. It is loaded once
// per invocation and never mutated.
type ToolConfig struct {
	DPMToolName     string
	ClientAuthBasic ClientAuthBasic
	ServiceAddress  ServiceAddress
}

// ClientAuthBasic is the OAuth2 client credential pair sent as HTTP Basic auth.
type ClientAuthBasic struct {
	Username string
	Password string
}

type ServiceAddress struct {
	AuthServiceHost         string
	HMRServiceHost          string
	ExportImportServiceHost string
}
