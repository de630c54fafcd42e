package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	TemplatesLocalDir = "templates"

	TemplateLayout   = "layout.html"
	TemplateIndex    = "index.html"
	TemplatePartials = "partials.html"

	DefaultConfigPath = "config.yaml"
)

const (
	EnvConfigPath        = "NOTICE_DESK_CONFIG"
	EnvAPIURL            = "NOTICE_API_URL"
	EnvPort              = "NOTICE_DESK_PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvS3Bucket          = "S3_BUCKET"
	EnvS3Endpoint        = "S3_ENDPOINT"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
)
