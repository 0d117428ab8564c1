// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs --parseDependency
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
        "/alerts": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns pending, delayed and visible alert batches with the display settings",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Alerts"
                ],
                "summary": "List active alerts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/alert.AlertListResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/alerts/{key}/defer": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Defers every speaker of the batch for the given number of minutes",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Alerts"
                ],
                "summary": "Ask again later",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Batch key",
                        "name": "key",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Deferral",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/alert.DeferRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/common.SuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown batch key",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/alerts/{key}/dismiss": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Dismisses every speaker of the batch. duration_ms=0 dismisses until restart.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Alerts"
                ],
                "summary": "Dismiss an alert",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Batch key",
                        "name": "key",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Dismiss duration",
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/alert.DismissRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/common.SuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown batch key",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/detections": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Passes one detection through the alert filter and batcher. qualified=false means the detection was stored but raised no alert.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Alerts"
                ],
                "summary": "Ingest a speaker detection",
                "parameters": [
                    {
                        "description": "Speaker detection",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/alert.DetectionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/alert.DetectionResultResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/duplicates": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Compares every unmerged profile pairwise and returns candidates, best first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Duplicates"
                ],
                "summary": "Scan for duplicate profiles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/duplicate.CandidateListResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/duplicates/compare": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Scores a group of profiles against the first one and lists field conflicts",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Duplicates"
                ],
                "summary": "Compare profiles",
                "parameters": [
                    {
                        "description": "Voice ids, primary first",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/duplicate.CompareRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/duplicate.CandidateResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Profile not found",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/duplicates/merge": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Folds the secondaries into the first profile. Every conflict needs a resolution.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Duplicates"
                ],
                "summary": "Merge profiles",
                "parameters": [
                    {
                        "description": "Voice ids and conflict resolutions",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/duplicate.MergeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/duplicate.MergeResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Unresolved conflicts or profile already merged",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Merge could not be persisted",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/history": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Oldest first, capped to the newest limit entries. limit=0 returns everything.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "History"
                ],
                "summary": "List history entries",
                "parameters": [
                    {
                        "type": "string",
                        "description": "identification or merge",
                        "name": "kind",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum entries",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/history.EntryListResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/history/export": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Flat rows: timestamp, speaker, meeting, action, method, user, confidence",
                "produces": [
                    "text/csv",
                    "application/json"
                ],
                "tags": [
                    "History"
                ],
                "summary": "Export history",
                "parameters": [
                    {
                        "type": "string",
                        "description": "csv (default) or json",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "CSV document",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/history/redo": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "entry is empty when there is nothing to redo",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "History"
                ],
                "summary": "Redo the last undone entry",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/history.RedoResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "502": {
                        "description": "Redone but not persisted",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/history/stats": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "History"
                ],
                "summary": "History statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/history.StatsResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/history/{id}/undo": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "History"
                ],
                "summary": "Undo a history entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/history.EntryResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Unknown entry",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Entry not undoable",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Undone but not persisted",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/ingest/assemblyai/{transcript_id}": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Aggregates the diarized utterances per speaker and feeds each detection to the alert engine",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Alerts"
                ],
                "summary": "Ingest an AssemblyAI transcript",
                "parameters": [
                    {
                        "type": "string",
                        "description": "AssemblyAI transcript id",
                        "name": "transcript_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Meeting the transcript belongs to",
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/alert.IngestTranscriptRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/alert.IngestTranscriptResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Transcript still processing",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "AssemblyAI unavailable",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/profiles/{voice_id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Profiles"
                ],
                "summary": "Get a speaker profile",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Voice id",
                        "name": "voice_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/profile.ProfileResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/profiles/{voice_id}/samples": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Stores the audio file in object storage and appends it to the profile",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Profiles"
                ],
                "summary": "Upload an audio sample",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Voice id",
                        "name": "voice_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "file",
                        "description": "Audio file",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "What was said in the sample",
                        "name": "transcript",
                        "in": "formData"
                    },
                    {
                        "type": "number",
                        "description": "Quality 0..1",
                        "name": "quality",
                        "in": "formData"
                    },
                    {
                        "type": "number",
                        "description": "Sample length in seconds",
                        "name": "duration_seconds",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Meeting the sample was taken from",
                        "name": "meeting_id",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/profile.AudioSampleResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Storage failed",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Sample stored but not recorded",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/webhooks/livekit": {
            "post": {
                "description": "Receives signed webhook events from LiveKit. room_finished runs a duplicate profile scan.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Webhooks"
                ],
                "summary": "LiveKit Webhook",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/common.SuccessResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Queues up to limit pending identification requests, oldest first",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Start an identification session",
                "parameters": [
                    {
                        "description": "Session size",
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/workflow.StartSessionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.SessionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Get session state",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.SessionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}/back": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Go to the previous step",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.SessionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "No previous step",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}/defer": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Decide later",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.TransitionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Session finished",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}/form": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Only the fields present are changed. Selecting a suggestion or profile switches the method.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Update the identification form",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Form changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/workflow.UpdateFormRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.SessionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Session finished",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}/next": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Go to the next step",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.SessionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "No next step",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}/skip": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Skip the current request",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.TransitionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Step cannot be skipped",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/workflow/sessions/{id}/submit": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records identified, or skipped when the form names nobody, and moves to the next request",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workflow"
                ],
                "summary": "Submit the current decision",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/common.SuccessResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/workflow.TransitionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Not allowed at this step",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Decision recorded but not persisted",
                        "schema": {
                            "$ref": "#/definitions/common.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "alert.AlertListResponse": {
            "description": "AlertListResponse represents the active alerts plus display hints",
            "type": "object",
            "properties": {
                "alerts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/alert.BatchResponse"
                    }
                },
                "position": {
                    "type": "string"
                },
                "theme": {
                    "type": "string"
                }
            }
        },
        "alert.BatchResponse": {
            "description": "BatchResponse represents an alert batch",
            "type": "object",
            "properties": {
                "close_reason": {
                    "type": "string"
                },
                "closed_at": {
                    "type": "string"
                },
                "first_detected_at": {
                    "type": "string"
                },
                "key": {
                    "type": "string"
                },
                "members": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/alert.DetectionResponse"
                    }
                },
                "signature": {
                    "$ref": "#/definitions/alert.SignatureResponse"
                },
                "state": {
                    "type": "string"
                },
                "visible_at": {
                    "type": "string"
                }
            }
        },
        "alert.DeferRequest": {
            "description": "DeferRequest represents the request to ask again later",
            "type": "object",
            "required": [
                "minutes"
            ],
            "properties": {
                "minutes": {
                    "type": "integer",
                    "maximum": 10080
                }
            }
        },
        "alert.DetectionRequest": {
            "description": "DetectionRequest represents a speaker detection pushed by the diarization pipeline",
            "type": "object",
            "required": [
                "pace_band",
                "pitch_band",
                "speaker_id"
            ],
            "properties": {
                "confidence": {
                    "type": "number",
                    "maximum": 1,
                    "minimum": 0
                },
                "context_clues": {
                    "type": "array",
                    "maxItems": 20,
                    "items": {
                        "type": "string"
                    }
                },
                "detected_at": {
                    "type": "string"
                },
                "last_active_at": {
                    "type": "string"
                },
                "meeting_id": {
                    "type": "string",
                    "maxLength": 255
                },
                "message_count": {
                    "type": "integer",
                    "minimum": 0
                },
                "pace_band": {
                    "type": "string"
                },
                "pitch_band": {
                    "type": "string"
                },
                "speaker_id": {
                    "type": "string",
                    "maxLength": 255
                },
                "speaking_duration_seconds": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "alert.DetectionResponse": {
            "description": "DetectionResponse represents one speaker detection",
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "number"
                },
                "context_clues": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "detected_at": {
                    "type": "string"
                },
                "last_active_at": {
                    "type": "string"
                },
                "meeting_id": {
                    "type": "string"
                },
                "message_count": {
                    "type": "integer"
                },
                "signature": {
                    "$ref": "#/definitions/alert.SignatureResponse"
                },
                "speaker_id": {
                    "type": "string"
                },
                "speaking_duration_seconds": {
                    "type": "number"
                }
            }
        },
        "alert.DetectionResultResponse": {
            "description": "DetectionResultResponse reports where an ingested detection landed. Batch is nil when the detection did not qualify.",
            "type": "object",
            "properties": {
                "batch": {
                    "$ref": "#/definitions/alert.BatchResponse"
                },
                "qualified": {
                    "type": "boolean"
                }
            }
        },
        "alert.DismissRequest": {
            "description": "DismissRequest represents the request to dismiss an alert. A zero duration dismisses until the service restarts.",
            "type": "object",
            "properties": {
                "duration_ms": {
                    "type": "integer",
                    "maximum": 9223372036854,
                    "minimum": 0
                }
            }
        },
        "alert.IngestTranscriptRequest": {
            "description": "IngestTranscriptRequest represents the request to turn a completed AssemblyAI transcript into detections",
            "type": "object",
            "properties": {
                "meeting_id": {
                    "type": "string",
                    "maxLength": 255
                }
            }
        },
        "alert.IngestTranscriptResponse": {
            "description": "IngestTranscriptResponse summarises a transcript ingest",
            "type": "object",
            "properties": {
                "batches": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/alert.BatchResponse"
                    }
                },
                "detections": {
                    "type": "integer"
                },
                "qualified": {
                    "type": "integer"
                },
                "transcript_id": {
                    "type": "string"
                }
            }
        },
        "alert.SignatureResponse": {
            "description": "SignatureResponse represents the coarse voice signature",
            "type": "object",
            "properties": {
                "pace_band": {
                    "type": "string"
                },
                "pitch_band": {
                    "type": "string"
                }
            }
        },
        "common.ErrorResponse": {
            "description": "ErrorResponse is the envelope of every error response",
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "info": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "common.SuccessResponse": {
            "description": "SuccessResponse is the envelope of every successful response",
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "data": {},
                "message": {
                    "type": "string"
                }
            }
        },
        "duplicate.CandidateListResponse": {
            "description": "CandidateListResponse represents a duplicate scan",
            "type": "object",
            "properties": {
                "candidates": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/duplicate.CandidateResponse"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "duplicate.CandidateResponse": {
            "description": "CandidateResponse represents a duplicate candidate group",
            "type": "object",
            "properties": {
                "auto_mergeable": {
                    "type": "boolean"
                },
                "conflicts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/duplicate.ConflictResponse"
                    }
                },
                "profiles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/profile.ProfileResponse"
                    }
                },
                "reasons": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "similarity_score": {
                    "type": "number"
                },
                "tier": {
                    "type": "string"
                }
            }
        },
        "duplicate.CompareRequest": {
            "description": "CompareRequest represents the request to compare a group of profiles. The first voice id is the primary.",
            "type": "object",
            "required": [
                "voice_ids"
            ],
            "properties": {
                "voice_ids": {
                    "type": "array",
                    "maxItems": 10,
                    "minItems": 2,
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "duplicate.ConflictResolution": {
            "description": "ConflictResolution picks the value a conflicted field keeps",
            "type": "object",
            "required": [
                "field",
                "resolution",
                "secondary_voice_id"
            ],
            "properties": {
                "custom_value": {
                    "type": "string"
                },
                "field": {
                    "type": "string",
                    "enum": [
                        "user_id",
                        "display_name"
                    ]
                },
                "resolution": {
                    "type": "string",
                    "enum": [
                        "primary",
                        "secondary",
                        "custom"
                    ]
                },
                "secondary_voice_id": {
                    "type": "string"
                }
            }
        },
        "duplicate.ConflictResponse": {
            "description": "ConflictResponse represents a field where two profiles disagree",
            "type": "object",
            "properties": {
                "custom_value": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "primary_value": {
                    "type": "string"
                },
                "resolution": {
                    "type": "string"
                },
                "secondary_value": {
                    "type": "string"
                },
                "secondary_voice_id": {
                    "type": "string"
                }
            }
        },
        "duplicate.MergeRequest": {
            "description": "MergeRequest represents the request to merge profiles into the first one",
            "type": "object",
            "required": [
                "voice_ids"
            ],
            "properties": {
                "resolutions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/duplicate.ConflictResolution"
                    }
                },
                "voice_ids": {
                    "type": "array",
                    "maxItems": 10,
                    "minItems": 2,
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "duplicate.MergeResponse": {
            "description": "MergeResponse represents the outcome of a merge",
            "type": "object",
            "properties": {
                "history_entry_id": {
                    "type": "string"
                },
                "merged": {
                    "$ref": "#/definitions/profile.ProfileResponse"
                },
                "secondaries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/profile.ProfileResponse"
                    }
                }
            }
        },
        "history.DailyActivityResponse": {
            "description": "DailyActivityResponse represents one day of the activity trend",
            "type": "object",
            "properties": {
                "accuracy": {
                    "type": "number"
                },
                "date": {
                    "type": "string"
                },
                "deferred": {
                    "type": "integer"
                },
                "identified": {
                    "type": "integer"
                },
                "merged": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                },
                "undone": {
                    "type": "integer"
                }
            }
        },
        "history.EntryListResponse": {
            "description": "EntryListResponse represents a list of ledger entries",
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/history.EntryResponse"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "history.EntryResponse": {
            "description": "EntryResponse represents one ledger entry",
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "confidence": {
                    "type": "number"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                },
                "id": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "meeting_id": {
                    "type": "string"
                },
                "meeting_title": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "restorable": {
                    "type": "boolean"
                },
                "speaker_label": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "undoable": {
                    "type": "boolean"
                },
                "user_id": {
                    "type": "string"
                },
                "user_name": {
                    "type": "string"
                },
                "voice_id": {
                    "type": "string"
                }
            }
        },
        "history.RedoResponse": {
            "description": "RedoResponse represents the outcome of a redo; Entry is nil when there was nothing to redo",
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/history.EntryResponse"
                }
            }
        },
        "history.StatsResponse": {
            "description": "StatsResponse represents ledger statistics",
            "type": "object",
            "properties": {
                "average_confidence": {
                    "type": "number"
                },
                "daily_activity": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/history.DailyActivityResponse"
                    }
                },
                "deferred": {
                    "type": "integer"
                },
                "identified": {
                    "type": "integer"
                },
                "merged": {
                    "type": "integer"
                },
                "method_breakdown": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "skipped": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "undone": {
                    "type": "integer"
                }
            }
        },
        "profile.AudioSampleResponse": {
            "description": "AudioSampleResponse represents a stored audio sample",
            "type": "object",
            "properties": {
                "duration_seconds": {
                    "type": "number"
                },
                "meeting_id": {
                    "type": "string"
                },
                "quality": {
                    "type": "number"
                },
                "timestamp": {
                    "type": "string"
                },
                "transcript": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "profile.ProfileResponse": {
            "description": "ProfileResponse represents a speaker profile",
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "number"
                },
                "confirmed": {
                    "type": "boolean"
                },
                "display_name": {
                    "type": "string"
                },
                "first_heard": {
                    "type": "string"
                },
                "last_heard": {
                    "type": "string"
                },
                "meetings_count": {
                    "type": "integer"
                },
                "merged_into": {
                    "type": "string"
                },
                "sample_count": {
                    "type": "integer"
                },
                "samples": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/profile.AudioSampleResponse"
                    }
                },
                "total_speaking_time_seconds": {
                    "type": "number"
                },
                "user_id": {
                    "type": "string"
                },
                "voice_id": {
                    "type": "string"
                }
            }
        },
        "workflow.FormResponse": {
            "description": "FormResponse represents the accumulated form inputs",
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "number"
                },
                "manual_name": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "selected_profile": {
                    "$ref": "#/definitions/profile.ProfileResponse"
                },
                "selected_suggestion": {
                    "$ref": "#/definitions/workflow.SuggestionResponse"
                }
            }
        },
        "workflow.ItemResponse": {
            "description": "ItemResponse represents the request under review",
            "type": "object",
            "properties": {
                "request": {
                    "$ref": "#/definitions/workflow.RequestResponse"
                },
                "suggestions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/workflow.SuggestionResponse"
                    }
                }
            }
        },
        "workflow.RequestResponse": {
            "description": "RequestResponse represents a NeedsIdentification request",
            "type": "object",
            "properties": {
                "audio_url": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "meeting_date": {
                    "type": "string"
                },
                "meeting_id": {
                    "type": "string"
                },
                "meeting_title": {
                    "type": "string"
                },
                "sample_transcripts": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "speaker_label": {
                    "type": "string"
                },
                "voice_id": {
                    "type": "string"
                }
            }
        },
        "workflow.ResultResponse": {
            "description": "ResultResponse represents one identification outcome",
            "type": "object",
            "properties": {
                "action": {
                    "type": "string"
                },
                "confidence": {
                    "type": "number"
                },
                "decided_at": {
                    "type": "string"
                },
                "meeting_id": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "speaker_label": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "user_name": {
                    "type": "string"
                },
                "voice_id": {
                    "type": "string"
                }
            }
        },
        "workflow.SessionResponse": {
            "description": "SessionResponse represents a workflow session",
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "current": {
                    "$ref": "#/definitions/workflow.ItemResponse"
                },
                "finished": {
                    "type": "boolean"
                },
                "form": {
                    "$ref": "#/definitions/workflow.FormResponse"
                },
                "id": {
                    "type": "string"
                },
                "index": {
                    "type": "integer"
                },
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/workflow.ResultResponse"
                    }
                },
                "step": {
                    "type": "string"
                },
                "steps": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "workflow.StartSessionRequest": {
            "description": "StartSessionRequest represents the request to open a session over pending requests",
            "type": "object",
            "properties": {
                "limit": {
                    "type": "integer",
                    "maximum": 100,
                    "minimum": 0
                }
            }
        },
        "workflow.SuggestionResponse": {
            "description": "SuggestionResponse represents a suggested identity",
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "number"
                },
                "reason": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "user_name": {
                    "type": "string"
                },
                "voice_id": {
                    "type": "string"
                }
            }
        },
        "workflow.TransitionResponse": {
            "description": "TransitionResponse represents a session after a terminal transition",
            "type": "object",
            "properties": {
                "result": {
                    "$ref": "#/definitions/workflow.ResultResponse"
                },
                "session": {
                    "$ref": "#/definitions/workflow.SessionResponse"
                }
            }
        },
        "workflow.UpdateFormRequest": {
            "description": "UpdateFormRequest represents a partial form update. Send an empty profile_voice_id to clear the selected profile.",
            "type": "object",
            "properties": {
                "confidence": {
                    "type": "number",
                    "maximum": 1,
                    "minimum": 0
                },
                "manual_name": {
                    "type": "string",
                    "maxLength": 255
                },
                "method": {
                    "type": "string",
                    "enum": [
                        "manual",
                        "suggested",
                        "matched"
                    ]
                },
                "profile_voice_id": {
                    "type": "string",
                    "maxLength": 255
                },
                "suggestion_voice_id": {
                    "type": "string",
                    "maxLength": 255
                }
            }
        }
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
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Meeting Voice ID API",
	Description:      "Speaker identification decisions for meeting transcripts: alerts, duplicate profiles, identification workflow and history",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
