// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package docs registers the OpenAPI document served under /swagger.
//
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
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
        "/open/destinations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Destinations"],
                "summary": "List all destinations",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Destination"}}}
                }
            }
        },
        "/open/destination/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Destinations"],
                "summary": "Get a destination",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Destination"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/open/destination/{id}/coordinates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Destinations"],
                "summary": "Get destination coordinates",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Coordinates"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/open/countries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Destinations"],
                "summary": "List countries",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/open/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Destinations"],
                "summary": "Search destinations",
                "parameters": [
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "string", "name": "country", "in": "query"},
                    {"type": "string", "name": "region", "in": "query"},
                    {"type": "integer", "name": "n", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Destination"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/open/public-lists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Recent public lists for guests",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PublicListSummary"}}}
                }
            }
        },
        "/open/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create a local account",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/open/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/secure/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserSummary"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/secure/list": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Create a list",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateListRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/secure/list/{name}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Update a list",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.UpdateListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Delete a list",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/secure/lists": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Caller's lists",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.List"}}}
                }
            }
        },
        "/secure/list/{name}/details": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "List details with destinations and reviews",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ListDetails"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/secure/public-lists": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "All public lists",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PublicListSummary"}}}
                }
            }
        },
        "/secure/lists/{id}/review": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Review a list",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "All users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.UserSummary"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/admin/reviews": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "All reviews",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ReviewEntry"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/admin/ban-user": {"post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Disable an account", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.EmailRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}}}},
        "/admin/unban-user": {"post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Enable an account", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.EmailRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}}}},
        "/admin/make-admin": {"post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Grant admin", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.EmailRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}}}},
        "/admin/remove-admin": {"post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Revoke admin", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.EmailRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}}}},
        "/admin/toggle-review-hidden": {"post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Hide or unhide a review", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ToggleReviewRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}}}}
    },
    "definitions": {
        "api.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "api.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "api.EmailRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}}},
        "api.RegisterRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "displayName": {"type": "string"}}},
        "api.RegisterResponse": {"type": "object", "properties": {"message": {"type": "string"}, "user": {"$ref": "#/definitions/models.UserSummary"}}},
        "api.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "api.LoginResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}, "expiresAt": {"type": "string"}}},
        "api.CreateListRequest": {"type": "object", "required": ["name", "visibility"], "properties": {"name": {"type": "string", "maxLength": 100}, "visibility": {"type": "boolean"}, "description": {"type": "string", "maxLength": 1000}, "destinations": {"type": "array", "items": {"type": "integer"}}}},
        "api.UpdateListRequest": {"type": "object", "properties": {"visibility": {"type": "boolean"}, "description": {"type": "string", "maxLength": 1000}, "destinations": {"type": "array", "items": {"type": "integer"}}}},
        "api.ReviewRequest": {"type": "object", "required": ["rating"], "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 10}, "comment": {"type": "string"}}},
        "api.ToggleReviewRequest": {"type": "object", "required": ["listName", "reviewIndex"], "properties": {"listName": {"type": "string"}, "reviewIndex": {"type": "integer"}, "hidden": {"type": "boolean"}}},
        "models.Destination": {"type": "object", "properties": {"customId": {"type": "integer"}, "Destination": {"type": "string"}, "Region": {"type": "string"}, "Country": {"type": "string"}, "Category": {"type": "string"}, "Latitude": {"type": "number"}, "Longitude": {"type": "number"}, "Approximate Annual Tourists": {"type": "string"}, "Currency": {"type": "string"}, "Majority Religion": {"type": "string"}, "Famous Foods": {"type": "string"}, "Language": {"type": "string"}, "Best Time to Visit": {"type": "string"}, "Cost of Living": {"type": "string"}, "Safety": {"type": "string"}, "Cultural Significance": {"type": "string"}, "Description": {"type": "string"}, "attributes": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "models.Coordinates": {"type": "object", "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}}},
        "models.UserSummary": {"type": "object", "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "displayName": {"type": "string"}, "disabled": {"type": "boolean"}, "admin": {"type": "boolean"}, "provider": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.Review": {"type": "object", "properties": {"rating": {"type": "integer"}, "comment": {"type": "string"}, "hidden": {"type": "boolean"}, "userId": {"type": "string"}, "userName": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.List": {"type": "object", "properties": {"name": {"type": "string"}, "destinations": {"type": "array", "items": {"type": "integer"}}, "visibility": {"type": "boolean"}, "description": {"type": "string"}, "createdBy": {"type": "string"}, "creatorName": {"type": "string"}, "createdAt": {"type": "string"}, "lastModified": {"type": "string"}, "reviews": {"type": "array", "items": {"$ref": "#/definitions/models.Review"}}}},
        "models.PublicListSummary": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "creatorName": {"type": "string"}, "destinationCount": {"type": "integer"}, "destinations": {"type": "array", "items": {"type": "integer"}}, "averageRating": {"type": "number"}, "reviewCount": {"type": "integer"}, "lastModified": {"type": "string"}, "reviews": {"type": "array", "items": {"$ref": "#/definitions/models.Review"}}}},
        "models.ListDetails": {"type": "object", "properties": {"name": {"type": "string"}, "visibility": {"type": "boolean"}, "description": {"type": "string"}, "createdBy": {"type": "string"}, "creatorName": {"type": "string"}, "lastModified": {"type": "string"}, "destinations": {"type": "array", "items": {"$ref": "#/definitions/models.Destination"}}, "reviews": {"type": "array", "items": {"$ref": "#/definitions/models.Review"}}, "averageRating": {"type": "number"}}},
        "models.ReviewEntry": {"type": "object", "properties": {"listName": {"type": "string"}, "reviewIndex": {"type": "integer"}, "rating": {"type": "integer"}, "comment": {"type": "string"}, "hidden": {"type": "boolean"}, "userId": {"type": "string"}, "userName": {"type": "string"}, "createdAt": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Wayfarer API",
	Description:      "Curated European destinations, personal travel lists and list reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
