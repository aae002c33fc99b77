// Package docs holds the OpenAPI description served at /swagger.
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
        "/auth/register": {
            "post": {
                "description": "Register a new account. Role defaults to user.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Register new user",
                "parameters": [
                    {"description": "Register Request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "User login",
                "parameters": [
                    {"description": "Login Request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revoke the bearer token used for this request",
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Response"}}
                }
            }
        },
        "/sweets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Get every sweet in the catalog",
                "produces": ["application/json"],
                "tags": ["Sweets"],
                "summary": "List sweets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Sweet"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Add a new sweet to the catalog (Admin)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin - Sweets"],
                "summary": "Create sweet",
                "parameters": [
                    {"description": "Sweet", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateSweetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Sweet"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/sweets/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filter sweets by name, category and price range. Text filters are case-insensitive substrings.",
                "produces": ["application/json"],
                "tags": ["Sweets"],
                "summary": "Search sweets",
                "parameters": [
                    {"type": "string", "description": "Name contains", "name": "name", "in": "query"},
                    {"type": "string", "description": "Category contains", "name": "category", "in": "query"},
                    {"type": "number", "description": "Minimum price (inclusive)", "name": "minPrice", "in": "query"},
                    {"type": "number", "description": "Maximum price (inclusive)", "name": "maxPrice", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Sweet"}}}
                }
            }
        },
        "/sweets/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Sweets"],
                "summary": "Get sweet",
                "parameters": [
                    {"type": "string", "description": "Sweet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Sweet"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Update any subset of name, category, price and quantityInStock (Admin)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin - Sweets"],
                "summary": "Update sweet",
                "parameters": [
                    {"type": "string", "description": "Sweet ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateSweetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Sweet"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Delete sweet permanently (Admin)",
                "produces": ["application/json"],
                "tags": ["Admin - Sweets"],
                "summary": "Delete sweet",
                "parameters": [
                    {"type": "string", "description": "Sweet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/sweets/{id}/purchase": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Buy one unit of a sweet",
                "produces": ["application/json"],
                "tags": ["Inventory"],
                "summary": "Purchase sweet",
                "parameters": [
                    {"type": "string", "description": "Sweet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.InventoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/sweets/{id}/restock": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Add units to a sweet's stock (Admin)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin - Inventory"],
                "summary": "Restock sweet",
                "parameters": [
                    {"type": "string", "description": "Sweet ID", "name": "id", "in": "path", "required": true},
                    {"description": "Units to add", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RestockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.InventoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "models.CreateSweetRequest": {
            "type": "object",
            "required": ["category", "name", "price"],
            "properties": {
                "category": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantityInStock": {"type": "integer", "minimum": 0}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "models.InventoryResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "sweet": {"$ref": "#/definitions/models.Sweet"}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "minLength": 2},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["user", "admin"]}
            }
        },
        "models.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "models.RestockRequest": {
            "type": "object",
            "properties": {
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "models.Sweet": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantityInStock": {"type": "integer"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.UpdateSweetRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantityInStock": {"type": "integer", "minimum": 0}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Mithai Mahal API",
	Description:      "Catalog, inventory and authentication API for the Mithai Mahal sweets shop.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
