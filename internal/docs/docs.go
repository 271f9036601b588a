// Package docs registra la definición OpenAPI servida en /swagger.
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
        "/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "List owners by name with their pet count",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ownerResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Register an owner",
                "parameters": [
                    {"description": "owner", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createOwnerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ownerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/owners/{ownerID}": {
            "delete": {
                "tags": ["owners"],
                "summary": "Remove an owner and all of its pets",
                "parameters": [
                    {"type": "string", "description": "owner id", "name": "ownerID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/owners/{ownerID}/pets": {
            "post": {
                "description": "Unknown pet or owner ids are ignored, as the store does.",
                "consumes": ["application/json"],
                "tags": ["owners"],
                "summary": "Adopt a pet",
                "parameters": [
                    {"type": "string", "description": "owner id", "name": "ownerID", "in": "path", "required": true},
                    {"description": "pet to adopt", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/adoptPetRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List pets available for adoption",
                "parameters": [
                    {"type": "string", "description": "pet type prefix (case-sensitive)", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/petResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Register a pet up for adoption",
                "parameters": [
                    {"description": "pet", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/adopted": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List adopted pets with their owner name",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/petResponse"}}}
                }
            }
        },
        "/pets/{petID}": {
            "delete": {
                "tags": ["pets"],
                "summary": "Remove a pet",
                "parameters": [
                    {"type": "string", "description": "pet id", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "adoptPetRequest": {
            "type": "object",
            "properties": {"pet_id": {"type": "string"}}
        },
        "createOwnerRequest": {
            "type": "object",
            "properties": {"image": {"type": "integer"}, "name": {"type": "string"}}
        },
        "createPetRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "image": {"type": "integer"},
                "name": {"type": "string"},
                "pet_type": {"type": "string"}
            }
        },
        "ownerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "image": {"type": "integer"},
                "name": {"type": "string"},
                "number_of_pets": {"type": "integer"}
            }
        },
        "petResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "id": {"type": "string"},
                "image": {"type": "integer"},
                "is_adopted": {"type": "boolean"},
                "name": {"type": "string"},
                "owner_name": {"type": "string"},
                "pet_type": {"type": "string"}
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
	Title:            "Pet adoption tracker API",
	Description:      "Owners, pets and adoptions over the embedded store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
