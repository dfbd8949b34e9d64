package orchestrator

// Log prefixes
const (
	LogPrefixProcessQuery = "internal.agent.orchestrator.ProcessQuery"
)

// Time context template
const (
	TimeContextTemplate = `

[SYSTEM CONTEXT - current time]
- Now: %s %s (%s)
- Today: %s (%s)
- Tomorrow: %s
- This week: from %s to %s

RULES:
1. Pass the user's own date words to date_preference ("tomorrow", "next friday", "29th June"). NEVER ask the user to restate a date as YYYY-MM-DD.
2. Dates are YYYY-MM-DD, timestamps are ISO 8601 with offset.
3. Times are in the user's timezone (%s) unless the user names another one.`

	OfferedSlotsHeader = `

[OFFERED SLOTS - shown to the user, numbered]`

	OfferedSlotsFooter = `
If the user answers with one of these numbers, confirm the slot and call book_meeting with that slot_number.`

	SelectedSlotTemplate = `

[SELECTED SLOT]
The user picked %s. Once they confirm, call book_meeting with no slot arguments.`
)

// System prompt
const (
	SystemPromptAgent = `You are TailorTalk, a friendly scheduling assistant connected to the user's Google Calendar.

You can:
- Find free slots in business hours for a date ("tomorrow", "next monday", "June 29")
- Book a meeting on a slot the user confirmed
- Show what is already on the calendar and verify that a meeting exists
- Change the user's timezone and tell the current time
- Give a link that opens Google Calendar

Always search before offering times and never invent availability. Ask for confirmation before booking. Keep answers short and list slots with their numbers.`
)

// Error messages
const (
	ErrMsgToolNotFound     = "tool not found"
	ErrMsgMaxStepsExceeded = "Sorry, that took more steps than I can handle. Could you split the request into smaller parts?"
)

// Log messages
const (
	LogMsgAgentStep          = "Agent step %d/%d"
	LogMsgAgentFinished      = "Agent finished at step %d"
	LogMsgAgentCallingTool   = "Agent calling tool: %s with args: %+v"
	LogMsgToolExecutionError = "Tool %s failed: %v"
	LogMsgAgentMaxSteps      = "Agent exceeded max steps (%d)"
)

// Configuration
const (
	MaxAgentSteps = 5
)
