// Package swagger holds the OpenAPI document served under /swagger.
//
// Regenerate from the handler annotations with:
//
//	swag init -g cmd/start.go -o docs/swagger
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/tankopedia/{id}": {
            "get": {"tags": ["tankopedia"], "summary": "Get Tank", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid id"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["tankopedia"], "summary": "Delete Tank", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/tankopedia/code/{code}": {
            "get": {"tags": ["tankopedia"], "summary": "Get Tank By Code", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/tankopedia/tier/{tier}": {
            "get": {"tags": ["tankopedia"], "summary": "List Tanks By Tier", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "tier", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Tier out of range"}}}
        },
        "/tankopedia/refresh": {
            "post": {"tags": ["tankopedia"], "summary": "Refresh Tankopedia", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Malformed response"}, "422": {"description": "Inconsistent catalog"}}}
        },
        "/maps/{id}": {
            "get": {"tags": ["maps"], "summary": "Get Map", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/maps/code/{code}": {
            "get": {"tags": ["maps"], "summary": "Get Map By Key", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/maps/refresh": {
            "post": {"tags": ["maps"], "summary": "Refresh Maps", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Malformed response"}, "422": {"description": "Inconsistent catalog"}}}
        },
        "/stats/tanks": {
            "post": {"tags": ["stats"], "summary": "Ingest Tank Stats", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Malformed response"}}}
        },
        "/stats/achievements": {
            "post": {"tags": ["stats"], "summary": "Ingest Achievements", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Malformed response"}}}
        },
        "/stats/tanks/{account_id}": {
            "get": {"tags": ["stats"], "summary": "List Tank Stats", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "account_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/stats/achievements/{account_id}": {
            "get": {"tags": ["stats"], "summary": "List Max Series", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "account_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/stats/region/{account_id}": {
            "get": {"tags": ["stats"], "summary": "Account Region", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "account_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/stats/tank/{id}": {
            "get": {"tags": ["stats"], "summary": "Get Tank Stat", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid id"}, "404": {"description": "Not found"}}}
        },
        "/replay/meta": {
            "post": {"tags": ["replay"], "summary": "Parse Replay Meta", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid meta"}}}
        },
        "/replay/summary": {
            "post": {"tags": ["replay"], "summary": "Summarize Replay", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid replay"}}}
        },
        "/conversions": {
            "get": {"tags": ["conversions"], "summary": "List Conversions", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/integrity": {
            "get": {"tags": ["integrity"], "summary": "Run All Integrity Checks", "produces": ["application/json"],
                "responses": {"200": {"description": "Combined Report"}}}
        },
        "/integrity/structure": {
            "get": {"tags": ["integrity"], "summary": "Check Structure", "produces": ["application/json"],
                "parameters": [{"type": "boolean", "name": "fix", "in": "query"}],
                "responses": {"200": {"description": "Structure Report"}, "500": {"description": "Internal Server Error"}}}
        },
        "/integrity/catalogs": {
            "get": {"tags": ["integrity"], "summary": "Check Catalogs", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/integrity/schema": {
            "get": {"tags": ["integrity"], "summary": "Check Schema", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blitz Stats API",
	Description:      "Reference catalogs and player statistics ingestion.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
