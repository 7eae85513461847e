// Package docs holds the swagger spec served under /swagger.
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
        "/api/va-summary": {
            "get": {
                "description": "Last 7 days of visits, pageviews and top pages for the project",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Web analytics summary",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Project ID, used when VERCEL_PROJECT_ID is unset",
                        "name": "projectId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Team ID, used when VERCEL_ORG_ID and VERCEL_TEAM_ID are unset",
                        "name": "teamId",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SummaryResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/rss.xml": {
            "get": {
                "produces": ["application/xml"],
                "tags": ["feeds"],
                "summary": "RSS feed of all published articles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/atom.xml": {
            "get": {
                "produces": ["application/xml"],
                "tags": ["feeds"],
                "summary": "Atom feed of all published articles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/{collection}/atom.xml": {
            "get": {
                "produces": ["application/xml"],
                "tags": ["feeds"],
                "summary": "Atom feed of one collection",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Collection name",
                        "name": "collection",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness and content statistics",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/metrics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Request and upstream metrics",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        }
    },
    "definitions": {
        "types.TimeRange": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "types.SummaryResponse": {
            "type": "object",
            "properties": {
                "range": {"$ref": "#/definitions/types.TimeRange"},
                "projectId": {"type": "string"},
                "visits": {},
                "pageviews": {},
                "series": {},
                "topPages": {"type": "array", "items": {}}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "chixitown site API",
	Description:      "Analytics summary proxy and content feeds for chixitown.com",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
