// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
                "tags": ["auth"],
                "summary": "Register a new voter",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "User created successfully", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Email already exists", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/models.LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserResponse"}}}
            }
        },
        "/candidates": {
            "get": {
                "tags": ["candidates"],
                "summary": "List candidates",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Candidate"}}}}
            }
        },
        "/results": {
            "get": {
                "tags": ["results"],
                "summary": "Results board",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.CandidateResult"}}}}
            }
        },
        "/results/{id}": {
            "get": {
                "tags": ["results"],
                "summary": "Candidate tally",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CandidateTally"}},
                    "404": {"description": "Candidate not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/votes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["votes"],
                "summary": "Cast the daily free vote",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.VoteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CastVoteResponse"}},
                    "403": {"description": "Already voted today", "schema": {"$ref": "#/definitions/models.DailyLimitResponse"}},
                    "404": {"description": "Candidate not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/votes/purchase": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["votes"],
                "summary": "Purchase paid votes",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.PurchaseVoteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PurchaseVoteResponse"}},
                    "403": {"description": "Already voted today", "schema": {"$ref": "#/definitions/models.DailyLimitResponse"}},
                    "422": {"description": "Quantity must be at least 1", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/votes/can-vote": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["votes"],
                "summary": "Daily eligibility",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CanVoteResponse"}}}
            }
        },
        "/votes/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["votes"],
                "summary": "Vote history",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.VoteHistoryItem"}}}}
            }
        },
        "/admin/votes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "List all votes",
                "parameters": [
                    {"in": "query", "name": "user_id", "type": "integer"},
                    {"in": "query", "name": "type", "type": "string", "enum": ["free", "paid"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AdminVoteItem"}}}}
            }
        },
        "/admin/candidates": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Create a candidate",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateCandidateRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Candidate"}}}
            }
        },
        "/admin/candidates/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Update a candidate",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdateCandidateRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Candidate"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a candidate and its votes",
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeleteCandidateResponse"}}}
            }
        },
        "/admin/candidates/{id}/image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Upload a candidate image",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "formData", "name": "image", "type": "file", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Candidate"}}}
            }
        }
    },
    "definitions": {
        "models.RegisterRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6, "maxLength": 72}}},
        "models.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "models.UserResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "role": {"type": "string"}, "created_at": {"type": "string"}}},
        "models.LoginResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/models.UserResponse"}}},
        "models.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "models.ErrorResponse": {"type": "object", "properties": {"code": {"type": "integer"}, "error": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "string"}}},
        "models.DailyLimitResponse": {"type": "object", "properties": {"message": {"type": "string"}, "error": {"type": "string", "example": "daily_limit_exceeded"}, "next_vote_date": {"type": "string"}}},
        "models.Candidate": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "description": {"type": "string"}, "image": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "models.CreateCandidateRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "image": {"type": "string"}}},
        "models.UpdateCandidateRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "image": {"type": "string"}}},
        "models.DeleteCandidateResponse": {"type": "object", "properties": {"message": {"type": "string"}, "removed_votes": {"type": "integer"}}},
        "models.CandidateTally": {"type": "object", "properties": {"candidate_id": {"type": "integer"}, "free_votes": {"type": "integer"}, "paid_votes": {"type": "integer"}, "total_votes": {"type": "integer"}, "unique_voters": {"type": "integer"}}},
        "models.CandidateResult": {"type": "object", "properties": {"candidate": {"$ref": "#/definitions/models.Candidate"}, "candidate_id": {"type": "integer"}, "free_votes": {"type": "integer"}, "paid_votes": {"type": "integer"}, "total_votes": {"type": "integer"}, "unique_voters": {"type": "integer"}}},
        "models.VoteRequest": {"type": "object", "required": ["candidate_id"], "properties": {"candidate_id": {"type": "integer"}}},
        "models.PurchaseVoteRequest": {"type": "object", "required": ["candidate_id", "quantity"], "properties": {"candidate_id": {"type": "integer"}, "quantity": {"type": "integer", "minimum": 1, "maximum": 1000}}},
        "models.Vote": {"type": "object", "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "candidate_id": {"type": "integer"}, "type": {"type": "string"}, "created_at": {"type": "string"}}},
        "models.VoteCounts": {"type": "object", "properties": {"free_votes": {"type": "integer"}, "paid_votes": {"type": "integer"}, "total_votes": {"type": "integer"}}},
        "models.CastVoteResponse": {"type": "object", "properties": {"message": {"type": "string"}, "vote": {"$ref": "#/definitions/models.Vote"}, "daily_limit_reached": {"type": "boolean"}, "next_vote_date": {"type": "string"}, "updated_vote_counts": {"$ref": "#/definitions/models.VoteCounts"}}},
        "models.PurchaseVoteResponse": {"type": "object", "properties": {"message": {"type": "string"}, "total_votes": {"type": "integer"}, "votes": {"type": "array", "items": {"$ref": "#/definitions/models.Vote"}}, "daily_limit_reached": {"type": "boolean"}, "next_vote_date": {"type": "string"}, "updated_vote_counts": {"$ref": "#/definitions/models.VoteCounts"}}},
        "models.TodayVote": {"type": "object", "properties": {"candidate_name": {"type": "string"}, "vote_type": {"type": "string"}, "voted_at": {"type": "string"}}},
        "models.CanVoteResponse": {"type": "object", "properties": {"can_vote": {"type": "boolean"}, "next_vote_date": {"type": "string"}, "today_vote": {"$ref": "#/definitions/models.TodayVote"}}},
        "models.VoteHistoryItem": {"type": "object", "properties": {"id": {"type": "integer"}, "candidate_id": {"type": "integer"}, "candidate_name": {"type": "string"}, "type": {"type": "string"}, "created_at": {"type": "string"}}},
        "models.AdminVoteItem": {"type": "object", "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "user_email": {"type": "string"}, "candidate_id": {"type": "integer"}, "candidate_name": {"type": "string"}, "type": {"type": "string"}, "created_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pageant Voting API",
	Description:      "Daily voting, paid vote purchases and live results for the pageant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
