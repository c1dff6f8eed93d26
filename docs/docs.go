// Package docs registra la spec OpenAPI servida en /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/users/signup": {
            "post": {
                "tags": ["users"],
                "summary": "Create an account and return a session token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "500": {"description": "Any failure", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "tags": ["users"],
                "summary": "Exchange email and password for a token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "401": {"description": "Bad credentials", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UsersResponse"}}}
            }
        },
        "/api/users/me": {
            "get": {
                "tags": ["users"],
                "security": [{"BearerAuth": []}],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/users/me/reservations": {
            "get": {
                "tags": ["reservations"],
                "security": [{"BearerAuth": []}],
                "summary": "Reservations of the current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Reservation"}}},
                    "404": {"description": "No reservations", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/animals": {
            "get": {
                "tags": ["animals"],
                "summary": "List the catalog",
                "parameters": [
                    {"in": "query", "name": "type", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"in": "query", "name": "q", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AnimalsResponse"}}}
            }
        },
        "/api/animals/{id}": {
            "get": {
                "tags": ["animals"],
                "summary": "Get one animal",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Animal"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/animals/{id}/reservations": {
            "get": {
                "tags": ["reservations"],
                "security": [{"BearerAuth": []}],
                "summary": "Reservations of one animal",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Reservation"}}}}
            }
        },
        "/api/reservations": {
            "post": {
                "tags": ["reservations"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a reservation for the current user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReservationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Reservation"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "Other user", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Unknown user or animal", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/reservations/{id}": {
            "get": {
                "tags": ["reservations"],
                "security": [{"BearerAuth": []}],
                "summary": "Get one reservation",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Reservation"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "tags": ["reservations"],
                "security": [{"BearerAuth": []}],
                "summary": "Partially update an owned reservation",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationPatch"}}
                ],
                "responses": {
                    "200": {"description": "Updated reservation, or null for an empty patch", "schema": {"$ref": "#/definitions/Reservation"}},
                    "400": {"description": "Invalid date range", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not found or not owned", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["reservations"],
                "security": [{"BearerAuth": []}],
                "summary": "Cancel an owned reservation",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "message": {"type": "string"}}
        },
        "MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "TokenResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "token": {"type": "string"}}
        },
        "SignupRequest": {
            "type": "object",
            "required": ["firstName", "lastName", "email", "password", "address"],
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "address": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "host": {"type": "boolean"}
            }
        },
        "UsersResponse": {
            "type": "object",
            "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/User"}}}
        },
        "Animal": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string"},
                "breed": {"type": "string"},
                "num_animals": {"type": "integer"},
                "animal_img_url": {"type": "string"}
            }
        },
        "AnimalsResponse": {
            "type": "object",
            "properties": {"animals": {"type": "array", "items": {"$ref": "#/definitions/Animal"}}}
        },
        "Reservation": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "string", "format": "uuid"},
                "animal_id": {"type": "integer"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            }
        },
        "CreateReservationRequest": {
            "type": "object",
            "required": ["animal_id", "start_date", "end_date"],
            "properties": {
                "user_id": {"type": "string", "format": "uuid"},
                "animal_id": {"type": "integer"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            }
        },
        "ReservationPatch": {
            "type": "object",
            "properties": {
                "animal_id": {"type": "integer"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            }
        }
    }
}`

// SwaggerInfo se puede ajustar en runtime (Host, BasePath).
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animal Reservations API",
	Description:      "Sign up, browse the animal catalog and manage reservations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
