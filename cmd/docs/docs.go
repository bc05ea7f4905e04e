// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/finai_backend/main.go -o cmd/docs
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register new user"}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "User login"}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Refresh access token"}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Logout"}},
        "/auth/google": {"post": {"tags": ["auth"], "summary": "Sign in with a Google ID token"}},
        "/auth/google/exchange-code": {"post": {"tags": ["auth"], "summary": "Sign in with a Google authorization code"}},
        "/transactions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "List stored transactions"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Record a transaction"}
        },
        "/transactions/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Get a transaction by ID"},
            "put": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Update a transaction"},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete a transaction"}
        },
        "/transactions/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Toggle a transaction between pending and completed"}},
        "/transactions/month": {"get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Month view"}},
        "/transactions/export.csv": {"get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Export a month view as CSV"}},
        "/transactions/projections/materialize": {"post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Store a projected transaction"}},
        "/months": {"get": {"security": [{"BearerAuth": []}], "tags": ["overview"], "summary": "Month picker"}},
        "/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["overview"], "summary": "Dashboard"}},
        "/categories": {"get": {"security": [{"BearerAuth": []}], "tags": ["overview"], "summary": "Suggested categories"}},
        "/advisor/ask": {"post": {"security": [{"BearerAuth": []}], "tags": ["advisor"], "summary": "Ask the financial advisor"}},
        "/advisor/receipt": {"post": {"security": [{"BearerAuth": []}], "tags": ["advisor"], "summary": "Read a receipt image"}},
        "/users/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get the logged-in user"},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update the logged-in user's profile"}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FinAI Backend API",
	Description:      "Personal finance API: transactions, projected months, dashboard and a Gemini-backed advisor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
