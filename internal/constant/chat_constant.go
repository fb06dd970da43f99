package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Workflow step codes, in completion priority order.
const (
	WorkflowStepReportName = "report_name"
	WorkflowStepQuery      = "message_query"
	WorkflowStepChart      = "chart_configuration"
	WorkflowStepPublish    = "publish"
)

// Assistant reply stored when SQL generation fails. The user message must
// never be left without a reply, even on provider timeout.
const SqlGenerationFailedReply = "I wasn't able to generate a SQL query for that request. Please try rephrasing it."
