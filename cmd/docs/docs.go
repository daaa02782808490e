// Package docs holds the OpenAPI description served under /swagger.
//
// The template is maintained by hand in swag's output format and is not
// generated. Running `swag init` against the handler godoc would overwrite it,
// so route or DTO changes must be mirrored here directly.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "User is inactive", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register new user",
                "parameters": [{"in": "body", "name": "register", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            }
        },
        "/deals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["deals"],
                "summary": "List deals",
                "parameters": [
                    {"enum": ["new", "negotiation", "won", "lost"], "type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "client_id", "in": "query"},
                    {"type": "integer", "name": "assigned_to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.DealResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["deals"],
                "summary": "Create a deal",
                "parameters": [{"in": "body", "name": "deal", "required": true, "schema": {"$ref": "#/definitions/dto.CreateDealRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DealResponse"}},
                    "404": {"description": "Client not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/deals/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["deals"],
                "summary": "Deal statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DealStatsResponse"}}}
            }
        },
        "/deals/stats/report": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["deals"],
                "summary": "Deal statistics report",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/deals/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["deals"],
                "summary": "Get a deal",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DealResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["deals"],
                "summary": "Update a deal",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "deal", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateDealRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DealResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["deals"],
                "summary": "Delete a deal",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "List clients",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListClientsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Create a client",
                "parameters": [{"in": "body", "name": "client", "required": true, "schema": {"$ref": "#/definitions/dto.CreateClientRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ClientResponse"}}}
            }
        },
        "/clients/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Get a client",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClientResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Update a client",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "client", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateClientRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClientResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Delete a client",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListUsersResponse"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user by ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            }
        },
        "/users/{id}/active": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Activate or deactivate a user",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetUserActiveRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "dto.LoginResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_at": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.CreateUserRequest": {"type": "object", "required": ["username", "email", "password"], "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "full_name": {"type": "string"}}},
        "dto.SetUserActiveRequest": {"type": "object", "required": ["is_active"], "properties": {"is_active": {"type": "boolean"}}},
        "dto.UserResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "email": {"type": "string"}, "full_name": {"type": "string"}, "role": {"type": "string"}, "is_active": {"type": "boolean"}, "created_at": {"type": "string"}}},
        "dto.ListUsersResponse": {"type": "object", "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}}}},
        "dto.CreateClientRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "company": {"type": "string"}}},
        "dto.UpdateClientRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "company": {"type": "string"}}},
        "dto.ClientResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "company": {"type": "string"}, "created_by": {"type": "integer"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "dto.ListClientsResponse": {"type": "object", "properties": {"clients": {"type": "array", "items": {"$ref": "#/definitions/dto.ClientResponse"}}}},
        "dto.CreateDealRequest": {"type": "object", "required": ["title", "client_id"], "properties": {"title": {"type": "string"}, "client_id": {"type": "integer"}, "amount": {"type": "string", "example": "1500.00", "description": "non-negative, at most 2 decimal places, below 10000000000"}, "status": {"type": "string", "example": "new"}, "assigned_to": {"type": "integer"}}},
        "dto.UpdateDealRequest": {"type": "object", "properties": {"title": {"type": "string"}, "client_id": {"type": "integer"}, "amount": {"type": "string", "description": "non-negative, at most 2 decimal places, below 10000000000"}, "status": {"type": "string"}, "assigned_to": {"type": "integer"}}},
        "dto.DealResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}, "client_id": {"type": "integer"}, "amount": {"type": "string", "example": "1500.00"}, "status": {"type": "string"}, "created_by": {"type": "integer"}, "assigned_to": {"type": "integer"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}, "closed_at": {"type": "string"}}},
        "dto.DealStatsResponse": {"type": "object", "properties": {"total": {"type": "integer"}, "by_status": {"type": "object", "additionalProperties": {"type": "integer"}}, "won_amount": {"type": "string", "example": "300.00"}, "average_check": {"type": "string", "example": "150.00"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CRM Backend API",
	Description:      "Deal ledger and supporting CRM API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
