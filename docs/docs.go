// Package docs registers the swagger document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "http://github.com/Kamar-Folarin"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/projects/{id}/github": {
            "get": {
                "produces": ["application/json"],
                "tags": ["github"],
                "summary": "Get GitHub connection status",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ConnectionStatus"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["github"],
                "summary": "Link a project to a GitHub repository",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Repository to link", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.LinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RepoInfo"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["github"],
                "summary": "Unlink a project from GitHub",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/projects/{id}/github/heroes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Detect hero moments",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.HeroMoment"}}}
                }
            }
        },
        "/projects/{id}/github/assignees": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Suggest assignees for a task",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Task skill and candidate members", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.AssigneeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AssigneeScore"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "GitHub API error: 404"}}
        },
        "api.LinkRequest": {
            "type": "object",
            "required": ["repoUrl"],
            "properties": {
                "repoUrl": {"type": "string", "example": "https://github.com/owner/repo"},
                "token": {"type": "string"}
            }
        },
        "api.AssigneeRequest": {
            "type": "object",
            "required": ["requiredSkill"],
            "properties": {
                "requiredSkill": {"type": "string", "example": "backend"},
                "members": {"type": "array", "items": {"$ref": "#/definitions/service.Member"}}
            }
        },
        "service.ConnectionStatus": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean"},
                "owner": {"type": "string"},
                "repo": {"type": "string"}
            }
        },
        "service.Member": {
            "type": "object",
            "properties": {
                "login": {"type": "string"},
                "currentTaskCount": {"type": "integer"}
            }
        },
        "models.RepoInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "owner": {"type": "string"},
                "url": {"type": "string"},
                "description": {"type": "string"},
                "language": {"type": "string"},
                "stars": {"type": "integer"},
                "forks": {"type": "integer"},
                "openIssues": {"type": "integer"}
            }
        },
        "models.HeroMoment": {
            "type": "object",
            "properties": {
                "commitSha": {"type": "string"},
                "author": {"type": "string"},
                "authorAvatar": {"type": "string"},
                "message": {"type": "string"},
                "reason": {"type": "string"},
                "timestamp": {"type": "string"},
                "linesChanged": {"type": "integer"}
            }
        },
        "models.AssigneeScore": {
            "type": "object",
            "properties": {
                "login": {"type": "string"},
                "score": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Repo Insights API",
	Description:      "Activity analysis of the GitHub repositories linked to projects",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
