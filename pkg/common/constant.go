package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyDashDBType       string = "DASH_DB_TYPE"
	EnvKeyDashDbPath       string = "DASH_DB_PATH"
	EnvKeyDashDbDSN        string = "DASH_DB_DSN"
	EnvKeyDashHttpHostPort string = "DASH_HTTP_HOST_PORT"

	EnvKeyDashDefaultRate  string = "DASH_DEFAULT_RATE"
	EnvKeyDashDefaultBurst string = "DASH_DEFAULT_BURST"

	EnvKeyDashSeedFile string = "DASH_SEED_FILE"

	LoggerNameDashCore      string = "dash_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameNotifyHub     string = "notify_hub"
	LoggerNameSeeder        string = "seeder"

	LoggerFieldDashCategory   string = "category"
	LoggerCategoryDashIngest  string = "ingest"
	LoggerCategoryDashEngine  string = "engine"
	LoggerCategoryDashAlert   string = "alert"
	LoggerCategoryDashSensor  string = "sensor"
	LoggerCategoryDashDevice  string = "device"
	LoggerCategoryDashUser    string = "user"
	LoggerCategoryDashWebhook string = "webhook"
)
