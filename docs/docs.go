// Package docs registers the Swagger document served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["Health"], "summary": "Health Check", "produces": ["application/json"], "responses": {"200": {"description": "API is healthy"}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness Check", "produces": ["application/json"], "responses": {"200": {"description": "API is ready"}, "503": {"description": "Session store unavailable"}}}},
        "/live": {"get": {"tags": ["Health"], "summary": "Liveness Check", "produces": ["application/json"], "responses": {"200": {"description": "API is alive"}}}},
        "/api/v1/chat": {"post": {"tags": ["Chat"], "summary": "Send a chat message", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "required": ["message"], "properties": {"message": {"type": "string"}, "session_id": {"type": "string"}, "timezone": {"type": "string"}}}}], "responses": {"200": {"description": "Assistant reply"}, "400": {"description": "Invalid message or timezone"}}}},
        "/api/v1/sessions/{id}": {
            "get": {"tags": ["Chat"], "summary": "Get a session", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Session"}, "404": {"description": "Session not found"}}},
            "delete": {"tags": ["Chat"], "summary": "Reset a session", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Session removed"}}}
        },
        "/api/v1/scheduling/resolve": {"post": {"tags": ["Scheduling"], "summary": "Resolve a date phrase", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"phrase": {"type": "string"}, "timezone": {"type": "string"}, "full_week": {"type": "boolean"}}}}], "responses": {"200": {"description": "Window"}}}},
        "/api/v1/scheduling/slots": {"get": {"tags": ["Scheduling"], "summary": "Search free slots", "parameters": [{"in": "query", "name": "phrase", "type": "string"}, {"in": "query", "name": "duration", "type": "integer"}, {"in": "query", "name": "timezone", "type": "string"}, {"in": "query", "name": "full_week", "type": "boolean"}], "responses": {"200": {"description": "Slots"}, "502": {"description": "Calendar unavailable"}}}},
        "/api/v1/scheduling/bookings": {"post": {"tags": ["Scheduling"], "summary": "Book a meeting", "consumes": ["application/json"], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "required": ["start", "end"], "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "start": {"type": "string", "format": "date-time"}, "end": {"type": "string", "format": "date-time"}, "attendees": {"type": "array", "items": {"type": "string"}}, "timezone": {"type": "string"}}}}], "responses": {"200": {"description": "Created event"}, "400": {"description": "Invalid time range"}}}},
        "/api/v1/scheduling/bookings/{id}": {"delete": {"tags": ["Scheduling"], "summary": "Cancel a booking", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Cancelled"}, "404": {"description": "Event not found"}}}},
        "/api/v1/scheduling/events": {"get": {"tags": ["Scheduling"], "summary": "List calendar events", "parameters": [{"in": "query", "name": "phrase", "type": "string"}, {"in": "query", "name": "days_ahead", "type": "integer"}, {"in": "query", "name": "timezone", "type": "string"}, {"in": "query", "name": "query", "type": "string"}], "responses": {"200": {"description": "Events"}}}},
        "/api/v1/scheduling/events/verify": {"get": {"tags": ["Scheduling"], "summary": "Verify a meeting exists", "parameters": [{"in": "query", "name": "title", "type": "string"}, {"in": "query", "name": "phrase", "type": "string"}, {"in": "query", "name": "timezone", "type": "string"}], "responses": {"200": {"description": "Match result"}}}},
        "/api/v1/scheduling/link": {"get": {"tags": ["Scheduling"], "summary": "Google Calendar link", "parameters": [{"in": "query", "name": "view", "type": "string", "enum": ["day", "week", "month", "agenda"]}, {"in": "query", "name": "date", "type": "string"}], "responses": {"200": {"description": "Link"}}}},
        "/api/v1/scheduling/time": {"get": {"tags": ["Scheduling"], "summary": "Current time", "parameters": [{"in": "query", "name": "timezone", "type": "string"}], "responses": {"200": {"description": "Time info"}}}},
        "/webhook/telegram": {"post": {"tags": ["Telegram"], "summary": "Telegram webhook", "responses": {"200": {"description": "Accepted"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "TailorTalk Scheduling API",
	Description:      "Conversational scheduling assistant backed by Google Calendar.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
