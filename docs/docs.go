// Package docs holds the swagger document served under /swagger.
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
        "/auth/revoke": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Revoke the presented bearer token",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "501": {
                        "description": "Not Implemented",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/couriers": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "couriers"
                ],
                "summary": "Register a courier",
                "parameters": [
                    {
                        "description": "request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.NewCourierRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/readmodel.CourierView"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/couriers/{id}/parcels/active": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "couriers"
                ],
                "summary": "Parcels a courier currently holds",
                "parameters": [
                    {
                        "type": "string",
                        "description": "courier id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/readmodel.ParcelView"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/customers/{id}/parcels": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "customers"
                ],
                "summary": "All parcels of a customer",
                "parameters": [
                    {
                        "type": "string",
                        "description": "customer id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/readmodel.ParcelView"
                            }
                        }
                    }
                }
            }
        },
        "/parcels": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Create a parcel for the calling customer",
                "parameters": [
                    {
                        "type": "string",
                        "description": "customer id",
                        "name": "X-Customer-ID",
                        "in": "header",
                        "required": true
                    },
                    {
                        "description": "request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.NewParcelRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/parcels/available": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Pending parcels, oldest first",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/readmodel.ParcelView"
                            }
                        }
                    }
                }
            }
        },
        "/parcels/{id}/cancel": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Cancel one of the caller's parcels",
                "parameters": [
                    {
                        "type": "string",
                        "description": "customer id",
                        "name": "X-Customer-ID",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "parcel id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/parcels/{id}/drop": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Give a held parcel back to the pool",
                "parameters": [
                    {
                        "type": "string",
                        "description": "courier username",
                        "name": "X-Courier-Username",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "parcel id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/parcels/{id}/history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Tracking history of a parcel, oldest first",
                "parameters": [
                    {
                        "type": "string",
                        "description": "parcel id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/readmodel.HistoryEntryView"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/parcels/{id}/location": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Report the location of a held parcel",
                "parameters": [
                    {
                        "type": "string",
                        "description": "courier username",
                        "name": "X-Courier-Username",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "parcel id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.LocationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "412": {
                        "description": "Precondition Failed",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/parcels/{id}/status": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Move a held parcel along its lifecycle",
                "parameters": [
                    {
                        "type": "string",
                        "description": "courier username",
                        "name": "X-Courier-Username",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "parcel id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.StatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/parcels/{id}/take": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "parcels"
                ],
                "summary": "Take a pending parcel",
                "parameters": [
                    {
                        "type": "string",
                        "description": "courier username",
                        "name": "X-Courier-Username",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "parcel id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        },
        "/tracking/{trackingNumber}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tracking"
                ],
                "summary": "Public lookup by tracking number",
                "parameters": [
                    {
                        "type": "string",
                        "description": "tracking number",
                        "name": "trackingNumber",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/readmodel.ParcelView"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.Error"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "http.Error": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "http.NewParcelRequest": {
            "type": "object",
            "properties": {
                "pickupAddress": {
                    "type": "string"
                },
                "deliveryAddress": {
                    "type": "string"
                },
                "weight": {
                    "type": "number"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "pickupAddress",
                "deliveryAddress",
                "weight"
            ]
        },
        "http.NewCourierRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                }
            },
            "required": [
                "username"
            ]
        },
        "http.StatusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "PENDING",
                        "ASSIGNED",
                        "PICKED_UP",
                        "IN_TRANSIT",
                        "DELIVERED",
                        "CANCELLED"
                    ]
                }
            },
            "required": [
                "status"
            ]
        },
        "http.LocationRequest": {
            "type": "object",
            "properties": {
                "lat": {
                    "type": "number"
                },
                "lon": {
                    "type": "number"
                },
                "zone": {
                    "type": "string"
                }
            },
            "required": [
                "lat",
                "lon"
            ]
        },
        "readmodel.LocationView": {
            "type": "object",
            "properties": {
                "lat": {
                    "type": "number"
                },
                "lon": {
                    "type": "number"
                },
                "zone": {
                    "type": "string"
                }
            }
        },
        "readmodel.CourierView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "available": {
                    "type": "boolean"
                },
                "currentLocation": {
                    "$ref": "#/definitions/readmodel.LocationView"
                }
            }
        },
        "readmodel.ParcelView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "trackingNumber": {
                    "type": "string"
                },
                "customerId": {
                    "type": "string"
                },
                "courierId": {
                    "type": "string"
                },
                "pickupAddress": {
                    "type": "string"
                },
                "deliveryAddress": {
                    "type": "string"
                },
                "weight": {
                    "type": "number"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "PENDING",
                        "ASSIGNED",
                        "PICKED_UP",
                        "IN_TRANSIT",
                        "DELIVERED",
                        "CANCELLED"
                    ]
                },
                "currentLocation": {
                    "$ref": "#/definitions/readmodel.LocationView"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "assignedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "pickedUpAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "deliveredAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "cancelledAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "readmodel.HistoryEntryView": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "packageId": {
                    "type": "string"
                },
                "kind": {
                    "type": "string",
                    "enum": [
                        "CREATED",
                        "ASSIGNED",
                        "DROPPED",
                        "STATUS_CHANGED",
                        "LOCATION_UPDATED"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "PENDING",
                        "ASSIGNED",
                        "PICKED_UP",
                        "IN_TRANSIT",
                        "DELIVERED",
                        "CANCELLED"
                    ]
                },
                "courierId": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "locationData": {
                    "$ref": "#/definitions/readmodel.LocationView"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "parcelhub API",
	Description:      "Parcel assignment, status tracking and notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
