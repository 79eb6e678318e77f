package featureflag

type Flag string

const (
	FlagDisableCellCompaction  Flag = "DISABLE_CELL_COMPACTION"
	FlagDisableQueryMetrics    Flag = "DISABLE_QUERY_METRICS"
	FlagDisableDebugEndpoints  Flag = "DISABLE_DEBUG_ENDPOINTS"
	FlagDisableVolumeMovement  Flag = "DISABLE_VOLUME_MOVEMENT"
	FlagDisablePopulateLogging Flag = "DISABLE_POPULATE_LOGGING"
)
