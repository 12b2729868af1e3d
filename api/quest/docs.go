// Package quest holds the Swagger document served under /swagger/. It is
// maintained by hand alongside the handler annotations.
package quest

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/cardquest"
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
        "/categories": {
            "get": {
                "description": "List the question categories currently available",
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "List Categories",
                "responses": {
                    "200": {"description": "categories", "schema": {"$ref": "#/definitions/questsdk.CategoriesResponse"}},
                    "500": {"description": "question bank unreadable", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe. Always 200 while the process is serving.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/questsdk.HealthResponse"}}
                }
            }
        },
        "/quiz/answer/{question}/{answer}": {
            "post": {
                "description": "Score an answer and consume the question. Any second answer to the same question is 404.",
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Answer Question",
                "parameters": [
                    {"type": "string", "description": "Question UUID", "name": "question", "in": "path", "required": true},
                    {"type": "integer", "description": "Chosen variant index", "name": "answer", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "correct, correct_answer", "schema": {"$ref": "#/definitions/questsdk.AnswerResponse"}},
                    "400": {"description": "malformed question id or answer", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "404": {"description": "unknown or already answered question", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe checking the database and the question bank",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/questsdk.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/questsdk.HealthResponse"}}
                }
            }
        },
        "/user/register/{sha256}": {
            "post": {
                "description": "Issue a one-time registration token for a card. The participant sends the token to the chat bot to pick a username.\nRepeating the request for a card that already holds a token returns the same token.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Begin Registration",
                "parameters": [
                    {"type": "string", "description": "64 hex characters", "name": "sha256", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "token, bot_url", "schema": {"$ref": "#/definitions/questsdk.RegistrationResponse"}},
                    "400": {"description": "malformed hash", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "409": {"description": "card already registered or token collision", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "500": {"description": "store failure", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}}
                }
            }
        },
        "/user/sha/{hash}": {
            "get": {
                "description": "Look up a registered account by the hex SHA-256 of its card",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get User By Card",
                "parameters": [
                    {"type": "string", "description": "64 hex characters", "name": "hash", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "uuid, username, card_hash", "schema": {"$ref": "#/definitions/questsdk.UserResponse"}},
                    "400": {"description": "malformed hash", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "404": {"description": "no such user", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}}
                }
            }
        },
        "/user/{id}": {
            "get": {
                "description": "Look up a registered account by its id",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get User",
                "parameters": [
                    {"type": "string", "description": "Account UUID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "uuid, username, card_hash", "schema": {"$ref": "#/definitions/questsdk.UserResponse"}},
                    "400": {"description": "malformed id", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "404": {"description": "no such user", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}}
                }
            }
        },
        "/user/{user}/question/{category}": {
            "get": {
                "description": "Draw a random question from a category and bind it to the user. The answer key is never returned.",
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Get Question",
                "parameters": [
                    {"type": "string", "description": "Account UUID", "name": "user", "in": "path", "required": true},
                    {"type": "string", "description": "Category name", "name": "category", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "id, bound_to, category, question, variants", "schema": {"$ref": "#/definitions/questsdk.QuestionResponse"}},
                    "400": {"description": "malformed user id", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "404": {"description": "unknown user or category", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}},
                    "422": {"description": "category has no questions", "schema": {"$ref": "#/definitions/questsdk.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "questsdk.AnswerResponse": {
            "type": "object",
            "properties": {
                "correct": {"type": "boolean"},
                "correct_answer": {"type": "integer"}
            }
        },
        "questsdk.CategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}}
            }
        },
        "questsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "questsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "question_bank": {"type": "string"}
            }
        },
        "questsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/questsdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "questsdk.QuestionResponse": {
            "type": "object",
            "properties": {
                "bound_to": {"type": "string"},
                "category": {"type": "string"},
                "id": {"type": "string"},
                "question": {"type": "string"},
                "variants": {"type": "array", "items": {"type": "string"}}
            }
        },
        "questsdk.RegistrationResponse": {
            "type": "object",
            "properties": {
                "bot_url": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "questsdk.UserResponse": {
            "type": "object",
            "properties": {
                "card_hash": {"type": "string"},
                "username": {"type": "string"},
                "uuid": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "CardQuest API",
	Description:      "Registration and quiz service for the card quest.\n\nEvery response is a JSON object with a \"success\" flag. Failures carry an \"error\" message and a non-2xx status.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
