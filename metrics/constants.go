package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCalculations     = "prospection_calculations_total"
	MetricNameProspectionValue = "prospection_value_total"
	MetricNameExports          = "prospection_exports_total"
	MetricNameHistoryErrors    = "prospection_history_errors_total"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextCalculations         = "Total number of prospection calculations"
	HelpTextProspectionValue     = "Sum of computed sale values"
	HelpTextExports              = "Total number of result downloads"
	HelpTextHistoryErrors        = "Total number of failed history store operations"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
)

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
