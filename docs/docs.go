// Package docs registers the gateway's OpenAPI document with swag so that
// http-swagger can serve it at /docs/doc.json. Regenerate with `swag init
// -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "Debate Stats"},
        "license": {"name": "MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/dataset": {"get": {"tags": ["datasets"], "summary": "List datasets", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/dataset/{slug}": {"get": {"tags": ["datasets"], "summary": "Get dataset", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/team/{teamID}": {"get": {"tags": ["teams"], "summary": "Get team profile", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/team/{teamID}/results": {"get": {"tags": ["teams"], "summary": "Get team results", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "teamID", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/judge/{judgeID}": {"get": {"tags": ["judges"], "summary": "Get judge profile", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "judgeID", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/judge/{judgeID}/record": {"get": {"tags": ["judges"], "summary": "Get judge record", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "judgeID", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/feature": {"get": {"tags": ["meta"], "summary": "List feature flags", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/feedback": {"post": {"tags": ["meta"], "summary": "Submit feedback", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.feedbackRequest"}}],
            "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/tables/team/{teamID}/career": {"get": {"tags": ["tables"], "summary": "Team career table",
            "produces": ["text/html", "application/json", "text/plain", "text/csv"],
            "parameters": [
                {"type": "string", "name": "teamID", "in": "path", "required": true},
                {"type": "string", "name": "format", "in": "query", "enum": ["html", "json", "text", "csv"]},
                {"type": "string", "name": "tier", "in": "query", "enum": ["core", "sm", "md", "lg"]},
                {"type": "integer", "name": "width", "in": "query"},
                {"type": "string", "name": "sort", "in": "query"},
                {"type": "string", "name": "dir", "in": "query", "enum": ["asc", "desc"]},
                {"type": "integer", "name": "page", "in": "query"}
            ],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/tables/team/{teamID}/tournaments": {"get": {"tags": ["tables"], "summary": "Team tournament table",
            "produces": ["text/html", "application/json", "text/plain", "text/csv"],
            "parameters": [
                {"type": "string", "name": "teamID", "in": "path", "required": true},
                {"type": "string", "name": "format", "in": "query", "enum": ["html", "json", "text", "csv"]},
                {"type": "string", "name": "tier", "in": "query", "enum": ["core", "sm", "md", "lg"]},
                {"type": "integer", "name": "width", "in": "query"},
                {"type": "string", "name": "sort", "in": "query"},
                {"type": "string", "name": "dir", "in": "query", "enum": ["asc", "desc"]},
                {"type": "string", "name": "expand", "in": "query"},
                {"type": "integer", "name": "page", "in": "query"}
            ],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}},
        "/tables/judge/{judgeID}/record": {"get": {"tags": ["tables"], "summary": "Judge record table",
            "produces": ["text/html", "application/json", "text/plain", "text/csv"],
            "parameters": [
                {"type": "string", "name": "judgeID", "in": "path", "required": true},
                {"type": "string", "name": "format", "in": "query", "enum": ["html", "json", "text", "csv"]},
                {"type": "string", "name": "tier", "in": "query", "enum": ["core", "sm", "md", "lg"]},
                {"type": "integer", "name": "width", "in": "query"},
                {"type": "string", "name": "sort", "in": "query"},
                {"type": "string", "name": "dir", "in": "query", "enum": ["asc", "desc"]},
                {"type": "string", "name": "click", "in": "query"}
            ],
            "responses": {"200": {"description": "OK"}, "303": {"description": "See Other"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}}}}
    },
    "definitions": {
        "handler.feedbackRequest": {"type": "object", "properties": {
            "page": {"type": "string"}, "message": {"type": "string"}, "email": {"type": "string"}}},
        "respond.ErrorResponse": {"type": "object", "properties": {
            "error": {"type": "object", "properties": {
                "code": {"type": "string"}, "message": {"type": "string"}, "detail": {"type": "string"}}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Debate Stats Gateway",
	Description:      "Debate statistics API. Profiles and results are JSON passthrough from Postgres; table endpoints render responsive result tables as HTML, JSON, text or CSV.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
