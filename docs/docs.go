// Package docs registers the OpenAPI document served under /swagger.
// Regenerate it from the handler annotations with go generate.
package docs

//go:generate swag init --v3.1 -g cmd/server/main.go -d ../ -o . --parseInternal

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "/api/v1"
        }
    ],
    "paths": {
        "/companies": {
            "get": {
                "operationId": "listCompanies",
                "summary": "List companies",
                "description": "Lists the companies visible to the caller, which is only its own tenant",
                "tags": [
                    "companies"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.CompanyResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createCompany",
                "summary": "Register a company",
                "description": "Register a new company. The company ID becomes the tenant ID of its data.",
                "tags": [
                    "companies"
                ],
                "requestBody": {
                    "description": "Company data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CreateCompanyRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CompanyResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/companies/{id}": {
            "get": {
                "operationId": "getCompany",
                "summary": "Get company by ID",
                "tags": [
                    "companies"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Company ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CompanyResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "operationId": "updateCompany",
                "summary": "Update company master data",
                "tags": [
                    "companies"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Company ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Company data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.UpdateCompanyRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CompanyResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/companies/{id}/deactivate": {
            "post": {
                "operationId": "deactivateCompany",
                "summary": "Deactivate a company",
                "description": "Deactivated companies are skipped by scheduled dunning runs",
                "tags": [
                    "companies"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Company ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CompanyResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/companies/{id}/dunning-settings": {
            "put": {
                "operationId": "updateCompanyDunningSettings",
                "summary": "Update dunning settings",
                "description": "Replace the grace periods, fees and deadlines used by dunning runs",
                "tags": [
                    "companies"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Company ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Dunning settings",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/invoicing.DunningSettings"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CompanyResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/customers": {
            "get": {
                "operationId": "listCustomers",
                "summary": "List customers",
                "tags": [
                    "customers"
                ],
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "description": "Search by name, number or email",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "description": "Customer kind",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "business",
                                "consumer"
                            ]
                        }
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "description": "Filter by active flag",
                        "schema": {
                            "type": "boolean"
                        }
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "description": "Page number",
                        "schema": {
                            "type": "integer",
                            "default": 1
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size",
                        "schema": {
                            "type": "integer",
                            "default": 20,
                            "maximum": 200
                        }
                    },
                    {
                        "name": "order_by",
                        "in": "query",
                        "description": "Sort field",
                        "schema": {
                            "type": "string",
                            "default": "name"
                        }
                    },
                    {
                        "name": "order_dir",
                        "in": "query",
                        "description": "Sort direction",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "asc",
                                "desc"
                            ]
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.CustomerResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createCustomer",
                "summary": "Create a customer",
                "description": "Create a business or consumer customer. The customer number is assigned from the tenant's sequence.",
                "tags": [
                    "customers"
                ],
                "requestBody": {
                    "description": "Customer data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CustomerRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CustomerResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/customers/{id}": {
            "get": {
                "operationId": "getCustomer",
                "summary": "Get customer by ID",
                "tags": [
                    "customers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Customer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CustomerResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "operationId": "updateCustomer",
                "summary": "Update a customer",
                "description": "Replace the customer's master data. Issued invoices keep their buyer snapshot.",
                "tags": [
                    "customers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Customer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Customer data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CustomerRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CustomerResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "operationId": "deleteCustomer",
                "summary": "Delete a customer",
                "description": "Only customers without invoices can be deleted; deactivate the others",
                "tags": [
                    "customers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Customer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/customers/{id}/deactivate": {
            "post": {
                "operationId": "deactivateCustomer",
                "summary": "Deactivate a customer",
                "description": "Inactive customers cannot receive new invoices or offers",
                "tags": [
                    "customers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Customer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CustomerResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/dunning/preview": {
            "get": {
                "operationId": "previewDunning",
                "summary": "Dry-run the dunning evaluation",
                "description": "Shows what a run would do for every overdue invoice without issuing anything",
                "tags": [
                    "dunning"
                ],
                "parameters": [
                    {
                        "name": "as_of",
                        "in": "query",
                        "description": "Evaluation date, defaults to today",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.DunningDecisionResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/dunning/runs": {
            "get": {
                "operationId": "listDunningRuns",
                "summary": "List dunning runs",
                "tags": [
                    "dunning"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "description": "Page number",
                        "schema": {
                            "type": "integer",
                            "default": 1
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size",
                        "schema": {
                            "type": "integer",
                            "default": 20,
                            "maximum": 200
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.DunningRunResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "runDunning",
                "summary": "Start a dunning run",
                "description": "repeating a completed run returns the stored result with replayed=true.",
                "tags": [
                    "dunning"
                ],
                "requestBody": {
                    "description": "Run date, defaults to today",
                    "required": false,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.RunDunningRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "Replayed run",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.DunningRunResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.DunningRunResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "A run for the tenant is in progress",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/dunning/runs/{id}/notices": {
            "get": {
                "operationId": "listDunningRunNotices",
                "summary": "List the notices a run produced",
                "tags": [
                    "dunning"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Run ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.DunningNoticeResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/expenses": {
            "get": {
                "operationId": "listExpenses",
                "summary": "List expenses",
                "tags": [
                    "expenses"
                ],
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "description": "Search by vendor or description",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "category",
                        "in": "query",
                        "description": "Category",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "office",
                                "travel",
                                "software",
                                "rent",
                                "marketing",
                                "vehicle",
                                "other"
                            ]
                        }
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "description": "Booked on or after",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "description": "Booked on or before",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "description": "Page number",
                        "schema": {
                            "type": "integer",
                            "default": 1
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size",
                        "schema": {
                            "type": "integer",
                            "default": 20,
                            "maximum": 200
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.ExpenseResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createExpense",
                "summary": "Book an expense",
                "tags": [
                    "expenses"
                ],
                "requestBody": {
                    "description": "Expense data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CreateExpenseRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ExpenseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/expenses/{id}": {
            "get": {
                "operationId": "getExpense",
                "summary": "Get expense by ID",
                "tags": [
                    "expenses"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Expense ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ExpenseResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "operationId": "deleteExpense",
                "summary": "Delete an expense",
                "tags": [
                    "expenses"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Expense ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/expenses/{id}/receipt": {
            "get": {
                "operationId": "getExpenseReceipt",
                "summary": "Get a receipt download URL",
                "tags": [
                    "expenses"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Expense ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ReceiptDownloadResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/expenses/{id}/receipt-upload": {
            "post": {
                "operationId": "requestExpenseReceiptUpload",
                "summary": "Get a receipt upload URL",
                "description": "Returns a presigned PUT URL; the client uploads the receipt directly to object storage",
                "tags": [
                    "expenses"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Expense ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "File metadata",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.ReceiptUploadRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ReceiptUploadResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/health": {
            "get": {
                "operationId": "getHealth",
                "summary": "Health check",
                "description": "Returns 503 when a backing service is unreachable",
                "tags": [
                    "system"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/handler.HealthResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/handler.HealthResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    }
                }
            }
        },
        "/invoices": {
            "get": {
                "operationId": "listInvoices",
                "summary": "List invoices",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "description": "Search by number or buyer name",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customer_id",
                        "in": "query",
                        "description": "Customer ID",
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "type",
                        "in": "query",
                        "description": "Invoice type",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "standard",
                                "cancellation"
                            ]
                        }
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "description": "Status filter",
                        "style": "form",
                        "explode": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "string"
                            }
                        }
                    },
                    {
                        "name": "dunning_level",
                        "in": "query",
                        "description": "Dunning level 0-5",
                        "schema": {
                            "type": "integer"
                        }
                    },
                    {
                        "name": "issued_from",
                        "in": "query",
                        "description": "Issued on or after",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    },
                    {
                        "name": "issued_to",
                        "in": "query",
                        "description": "Issued on or before",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    },
                    {
                        "name": "overdue",
                        "in": "query",
                        "description": "Only overdue invoices",
                        "schema": {
                            "type": "boolean"
                        }
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "description": "Page number",
                        "schema": {
                            "type": "integer",
                            "default": 1
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size",
                        "schema": {
                            "type": "integer",
                            "default": 20,
                            "maximum": 200
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.InvoiceListItem"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createInvoice",
                "summary": "Create a draft invoice",
                "description": "Drafts have no number; it is assigned on issue",
                "tags": [
                    "invoices"
                ],
                "requestBody": {
                    "description": "Invoice data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CreateInvoiceRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}": {
            "get": {
                "operationId": "getInvoice",
                "summary": "Get invoice by ID",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "operationId": "updateInvoice",
                "summary": "Update a draft invoice",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Draft content",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.UpdateInvoiceRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "operationId": "deleteInvoice",
                "summary": "Delete a draft invoice",
                "description": "Issued invoices cannot be deleted; cancel them instead",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/cancel": {
            "post": {
                "operationId": "cancelInvoice",
                "summary": "Cancel an invoice",
                "description": "Issues a Stornorechnung with negated amounts that references the original",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Cancellation",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CancelInvoiceRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CancelInvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/correct": {
            "post": {
                "operationId": "correctInvoice",
                "summary": "Correct an invoice",
                "description": "Cancels the invoice and opens a prefilled replacement draft",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Correction reason",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CancelInvoiceRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.CorrectInvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/dunning-block": {
            "post": {
                "operationId": "blockInvoiceDunning",
                "summary": "Block dunning for an invoice",
                "description": "Blocked invoices are skipped by dunning runs until unblocked",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Reason",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.ReasonRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "operationId": "unblockInvoiceDunning",
                "summary": "Lift a dunning block",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/dunning-preview": {
            "get": {
                "operationId": "previewInvoiceDunning",
                "summary": "Dry-run the dunning evaluation of one invoice",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "as_of",
                        "in": "query",
                        "description": "Evaluation date, defaults to today",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.DunningDecisionResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/escalate": {
            "post": {
                "operationId": "escalateInvoice",
                "summary": "Escalate one invoice outside of a run",
                "description": "Issues the next reminder or notice if the invoice is due for it",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Evaluation date, defaults to today",
                    "required": false,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.EscalateInvoiceRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.DunningNoticeResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/issue": {
            "post": {
                "operationId": "issueInvoice",
                "summary": "Issue a draft invoice",
                "description": "Assigns the next gapless invoice number and freezes the invoice",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Issue date, defaults to today",
                    "required": false,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.IssueInvoiceRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/notices": {
            "get": {
                "operationId": "listInvoiceNotices",
                "summary": "List dunning notices of an invoice",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.DunningNoticeResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/payments": {
            "post": {
                "operationId": "recordInvoicePayment",
                "summary": "Record a payment",
                "description": "Payments settle fees first, then interest, then the principal (§367 BGB)",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Payment",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.RecordPaymentRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/invoices/{id}/write-off": {
            "post": {
                "operationId": "writeOffInvoice",
                "summary": "Write off an uncollectible invoice",
                "tags": [
                    "invoices"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Invoice ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Reason",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.ReasonRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/offers": {
            "get": {
                "operationId": "listOffers",
                "summary": "List offers",
                "tags": [
                    "offers"
                ],
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "description": "Search by number or title",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customer_id",
                        "in": "query",
                        "description": "Customer ID",
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "description": "Status",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "draft",
                                "sent",
                                "accepted",
                                "rejected",
                                "converted"
                            ]
                        }
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "description": "Page number",
                        "schema": {
                            "type": "integer",
                            "default": 1
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size",
                        "schema": {
                            "type": "integer",
                            "default": 20,
                            "maximum": 200
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createOffer",
                "summary": "Create an offer",
                "tags": [
                    "offers"
                ],
                "requestBody": {
                    "description": "Offer data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.CreateOfferRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/offers/{id}": {
            "get": {
                "operationId": "getOffer",
                "summary": "Get offer by ID",
                "tags": [
                    "offers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Offer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/offers/{id}/accept": {
            "post": {
                "operationId": "acceptOffer",
                "summary": "Record the customer's acceptance",
                "tags": [
                    "offers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Offer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/offers/{id}/convert": {
            "post": {
                "operationId": "convertOffer",
                "summary": "Convert an accepted offer into a draft invoice",
                "tags": [
                    "offers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Offer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ConvertOfferResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/offers/{id}/reject": {
            "post": {
                "operationId": "rejectOffer",
                "summary": "Record the customer's rejection",
                "tags": [
                    "offers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Offer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Reason",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.ReasonRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/offers/{id}/send": {
            "post": {
                "operationId": "sendOffer",
                "summary": "Mark an offer as sent",
                "tags": [
                    "offers"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Offer ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/products": {
            "get": {
                "operationId": "listProducts",
                "summary": "List products",
                "tags": [
                    "products"
                ],
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "description": "Search by SKU or name",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "description": "Filter by active flag",
                        "schema": {
                            "type": "boolean"
                        }
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "description": "Page number",
                        "schema": {
                            "type": "integer",
                            "default": 1
                        }
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size",
                        "schema": {
                            "type": "integer",
                            "default": 20,
                            "maximum": 200
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/appinvoicing.ProductResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createProduct",
                "summary": "Create a product",
                "tags": [
                    "products"
                ],
                "requestBody": {
                    "description": "Product data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.ProductRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "Created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ProductResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/products/{id}": {
            "get": {
                "operationId": "getProduct",
                "summary": "Get product by ID",
                "tags": [
                    "products"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Product ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ProductResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "operationId": "updateProduct",
                "summary": "Update a product",
                "tags": [
                    "products"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Product ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "requestBody": {
                    "description": "Product data",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/appinvoicing.ProductRequest"
                            }
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ProductResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/products/{id}/deactivate": {
            "post": {
                "operationId": "deactivateProduct",
                "summary": "Deactivate a product",
                "tags": [
                    "products"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "Product ID",
                        "required": true,
                        "schema": {
                            "type": "string",
                            "format": "uuid"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/appinvoicing.ProductResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/open-items": {
            "get": {
                "operationId": "getOpenItemsReport",
                "summary": "Open items report",
                "description": "With format=xlsx the report is returned as an Excel workbook.",
                "tags": [
                    "reports"
                ],
                "parameters": [
                    {
                        "name": "as_of",
                        "in": "query",
                        "description": "Reporting date, defaults to today",
                        "schema": {
                            "type": "string",
                            "format": "date"
                        }
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "description": "Output format",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "json",
                                "xlsx"
                            ],
                            "default": "json"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/report.OpenItemsReport"
                                                }
                                            }
                                        }
                                    ]
                                }
                            },
                            "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {
                                "schema": {
                                    "type": "string",
                                    "format": "binary"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.ErrorResponse"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "components": {
        "schemas": {
            "appinvoicing.AddressDTO": {
                "type": "object",
                "properties": {
                    "street": {
                        "type": "string",
                        "maxLength": 200
                    },
                    "postal_code": {
                        "type": "string",
                        "maxLength": 20
                    },
                    "city": {
                        "type": "string",
                        "maxLength": 100
                    },
                    "country": {
                        "type": "string"
                    }
                }
            },
            "appinvoicing.CancelInvoiceRequest": {
                "type": "object",
                "required": [
                    "reason"
                ],
                "properties": {
                    "reason": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 500
                    },
                    "issue_date": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    }
                }
            },
            "appinvoicing.CancelInvoiceResponse": {
                "type": "object",
                "properties": {
                    "invoice": {
                        "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                    },
                    "cancellation": {
                        "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                    }
                }
            },
            "appinvoicing.CompanyResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "name": {
                        "type": "string"
                    },
                    "legal_form": {
                        "type": "string"
                    },
                    "address": {
                        "$ref": "#/components/schemas/appinvoicing.AddressDTO"
                    },
                    "email": {
                        "type": "string"
                    },
                    "phone": {
                        "type": "string"
                    },
                    "vat_id": {
                        "type": "string"
                    },
                    "tax_number": {
                        "type": "string"
                    },
                    "iban": {
                        "type": "string"
                    },
                    "bic": {
                        "type": "string"
                    },
                    "bank_name": {
                        "type": "string"
                    },
                    "small_business": {
                        "type": "boolean"
                    },
                    "default_payment_term_days": {
                        "type": "integer"
                    },
                    "tax_rates": {
                        "$ref": "#/components/schemas/appinvoicing.TaxRatesDTO"
                    },
                    "numbering": {
                        "$ref": "#/components/schemas/invoicing.NumberingSettings"
                    },
                    "dunning": {
                        "$ref": "#/components/schemas/invoicing.DunningSettings"
                    },
                    "active": {
                        "type": "boolean"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "updated_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "appinvoicing.ConvertOfferResponse": {
                "type": "object",
                "properties": {
                    "offer": {
                        "$ref": "#/components/schemas/appinvoicing.OfferResponse"
                    },
                    "invoice": {
                        "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                    }
                }
            },
            "appinvoicing.CorrectInvoiceResponse": {
                "type": "object",
                "properties": {
                    "invoice": {
                        "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                    },
                    "cancellation": {
                        "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                    },
                    "draft": {
                        "$ref": "#/components/schemas/appinvoicing.InvoiceResponse"
                    }
                }
            },
            "appinvoicing.CreateCompanyRequest": {
                "type": "object",
                "required": [
                    "name"
                ],
                "properties": {
                    "name": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 200
                    },
                    "legal_form": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "address": {
                        "$ref": "#/components/schemas/appinvoicing.AddressDTO"
                    },
                    "email": {
                        "type": "string"
                    },
                    "phone": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "vat_id": {
                        "type": "string"
                    },
                    "tax_number": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "iban": {
                        "type": "string",
                        "maxLength": 34
                    },
                    "bic": {
                        "type": "string",
                        "maxLength": 11
                    },
                    "bank_name": {
                        "type": "string",
                        "maxLength": 100
                    },
                    "small_business": {
                        "type": "boolean"
                    },
                    "default_payment_term_days": {
                        "type": "integer",
                        "minimum": 0,
                        "maximum": 365
                    }
                }
            },
            "appinvoicing.CreateExpenseRequest": {
                "type": "object",
                "required": [
                    "vendor"
                ],
                "properties": {
                    "date": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    },
                    "vendor": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 200
                    },
                    "category": {
                        "type": "string",
                        "enum": [
                            "office",
                            "travel",
                            "software",
                            "rent",
                            "marketing",
                            "vehicle",
                            "other"
                        ]
                    },
                    "description": {
                        "type": "string",
                        "maxLength": 2000
                    },
                    "net_amount": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_rate": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "appinvoicing.CreateInvoiceRequest": {
                "type": "object",
                "required": [
                    "customer_id"
                ],
                "properties": {
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "lines": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/appinvoicing.LineRequest"
                        }
                    },
                    "service_date": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    },
                    "payment_term_days": {
                        "type": "integer",
                        "minimum": 0,
                        "maximum": 365
                    },
                    "tax_regime": {
                        "type": "string",
                        "enum": [
                            "standard",
                            "reduced",
                            "reverse_charge",
                            "export",
                            "small_business"
                        ]
                    },
                    "notes": {
                        "type": "string",
                        "maxLength": 2000
                    }
                }
            },
            "appinvoicing.CreateOfferRequest": {
                "type": "object",
                "required": [
                    "customer_id",
                    "lines",
                    "title"
                ],
                "properties": {
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "title": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 200
                    },
                    "lines": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/appinvoicing.LineRequest"
                        }
                    },
                    "valid_until": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-06-30"
                    }
                }
            },
            "appinvoicing.CustomerRequest": {
                "type": "object",
                "required": [
                    "kind",
                    "name"
                ],
                "properties": {
                    "kind": {
                        "type": "string",
                        "enum": [
                            "business",
                            "consumer"
                        ]
                    },
                    "name": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 200
                    },
                    "contact_person": {
                        "type": "string",
                        "maxLength": 200
                    },
                    "email": {
                        "type": "string"
                    },
                    "phone": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "address": {
                        "$ref": "#/components/schemas/appinvoicing.AddressDTO"
                    },
                    "vat_id": {
                        "type": "string"
                    },
                    "payment_term_days": {
                        "type": "integer",
                        "minimum": 0,
                        "maximum": 365
                    },
                    "notes": {
                        "type": "string",
                        "maxLength": 2000
                    }
                }
            },
            "appinvoicing.CustomerResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "number": {
                        "type": "string"
                    },
                    "kind": {
                        "type": "string"
                    },
                    "name": {
                        "type": "string"
                    },
                    "contact_person": {
                        "type": "string"
                    },
                    "email": {
                        "type": "string"
                    },
                    "phone": {
                        "type": "string"
                    },
                    "address": {
                        "$ref": "#/components/schemas/appinvoicing.AddressDTO"
                    },
                    "vat_id": {
                        "type": "string"
                    },
                    "payment_term_days": {
                        "type": "integer"
                    },
                    "notes": {
                        "type": "string"
                    },
                    "active": {
                        "type": "boolean"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "updated_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "appinvoicing.DunningDecisionResponse": {
                "type": "object",
                "properties": {
                    "invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "as_of": {
                        "type": "string"
                    },
                    "escalate": {
                        "type": "boolean"
                    },
                    "current_level": {
                        "type": "string"
                    },
                    "next_level": {
                        "type": "string"
                    },
                    "target_level": {
                        "type": "string"
                    },
                    "days_overdue": {
                        "type": "integer"
                    },
                    "fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "flat_fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "interest": {
                        "type": "string",
                        "example": "0"
                    },
                    "interest_rate": {
                        "type": "string",
                        "example": "0"
                    },
                    "reason": {
                        "type": "string"
                    }
                }
            },
            "appinvoicing.DunningNoticeResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "number": {
                        "type": "string"
                    },
                    "invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "invoice_number": {
                        "type": "string"
                    },
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "run_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "level": {
                        "type": "string"
                    },
                    "title": {
                        "type": "string"
                    },
                    "issued_on": {
                        "type": "string"
                    },
                    "payment_deadline": {
                        "type": "string"
                    },
                    "days_overdue": {
                        "type": "integer"
                    },
                    "outstanding_principal": {
                        "type": "string",
                        "example": "0"
                    },
                    "fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "accumulated_fees": {
                        "type": "string",
                        "example": "0"
                    },
                    "interest": {
                        "type": "string",
                        "example": "0"
                    },
                    "accrued_interest": {
                        "type": "string",
                        "example": "0"
                    },
                    "interest_rate": {
                        "type": "string",
                        "example": "0"
                    },
                    "total_due": {
                        "type": "string",
                        "example": "0"
                    },
                    "subject": {
                        "type": "string"
                    },
                    "body": {
                        "type": "string"
                    }
                }
            },
            "appinvoicing.DunningRunResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "run_date": {
                        "type": "string"
                    },
                    "trigger": {
                        "type": "string"
                    },
                    "status": {
                        "type": "string"
                    },
                    "evaluated": {
                        "type": "integer"
                    },
                    "escalated": {
                        "type": "integer"
                    },
                    "skipped": {
                        "type": "integer"
                    },
                    "failed": {
                        "type": "integer"
                    },
                    "started_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "finished_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "error": {
                        "type": "string"
                    },
                    "replayed": {
                        "type": "boolean"
                    }
                }
            },
            "appinvoicing.EscalateInvoiceRequest": {
                "type": "object",
                "properties": {
                    "as_of": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    }
                }
            },
            "appinvoicing.ExpenseResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "date": {
                        "type": "string"
                    },
                    "vendor": {
                        "type": "string"
                    },
                    "category": {
                        "type": "string"
                    },
                    "description": {
                        "type": "string"
                    },
                    "net_amount": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_rate": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_amount": {
                        "type": "string",
                        "example": "0"
                    },
                    "gross_amount": {
                        "type": "string",
                        "example": "0"
                    },
                    "has_receipt": {
                        "type": "boolean"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "appinvoicing.InvoiceListItem": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "number": {
                        "type": "string"
                    },
                    "type": {
                        "type": "string"
                    },
                    "status": {
                        "type": "string"
                    },
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "customer_name": {
                        "type": "string"
                    },
                    "issue_date": {
                        "type": "string"
                    },
                    "due_date": {
                        "type": "string"
                    },
                    "gross_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "outstanding_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "dunning_level": {
                        "type": "string"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "appinvoicing.InvoiceResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "number": {
                        "type": "string"
                    },
                    "type": {
                        "type": "string"
                    },
                    "status": {
                        "type": "string"
                    },
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "seller": {
                        "$ref": "#/components/schemas/invoicing.PartySnapshot"
                    },
                    "buyer": {
                        "$ref": "#/components/schemas/invoicing.PartySnapshot"
                    },
                    "issue_date": {
                        "type": "string"
                    },
                    "service_date": {
                        "type": "string"
                    },
                    "due_date": {
                        "type": "string"
                    },
                    "payment_term_days": {
                        "type": "integer"
                    },
                    "tax_regime": {
                        "type": "string"
                    },
                    "tax_note": {
                        "type": "string"
                    },
                    "lines": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/invoicing.InvoiceLine"
                        }
                    },
                    "tax_breakdown": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/invoicing.TaxGroup"
                        }
                    },
                    "net_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "gross_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "notes": {
                        "type": "string"
                    },
                    "payments": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/appinvoicing.PaymentResponse"
                        }
                    },
                    "paid_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "outstanding_principal": {
                        "type": "string",
                        "example": "0"
                    },
                    "outstanding_fees": {
                        "type": "string",
                        "example": "0"
                    },
                    "outstanding_interest": {
                        "type": "string",
                        "example": "0"
                    },
                    "outstanding_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "dunning_level": {
                        "type": "string"
                    },
                    "dunning_blocked": {
                        "type": "boolean"
                    },
                    "dunning_block_reason": {
                        "type": "string"
                    },
                    "last_dunned_at": {
                        "type": "string"
                    },
                    "cancels_invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "cancelled_by_invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "corrects_invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "offer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "cancel_reason": {
                        "type": "string"
                    },
                    "write_off_reason": {
                        "type": "string"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "updated_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "appinvoicing.IssueInvoiceRequest": {
                "type": "object",
                "properties": {
                    "issue_date": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    }
                }
            },
            "appinvoicing.LineRequest": {
                "type": "object",
                "properties": {
                    "product_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "description": {
                        "type": "string",
                        "maxLength": 1000
                    },
                    "quantity": {
                        "type": "string",
                        "example": "0"
                    },
                    "unit": {
                        "type": "string",
                        "maxLength": 20
                    },
                    "unit_price": {
                        "type": "string",
                        "example": "0"
                    },
                    "discount_percent": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_category": {
                        "type": "string",
                        "enum": [
                            "standard",
                            "reduced"
                        ]
                    }
                }
            },
            "appinvoicing.OfferResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "number": {
                        "type": "string"
                    },
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "buyer": {
                        "$ref": "#/components/schemas/invoicing.PartySnapshot"
                    },
                    "title": {
                        "type": "string"
                    },
                    "lines": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/invoicing.InvoiceLine"
                        }
                    },
                    "tax_regime": {
                        "type": "string"
                    },
                    "net_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "gross_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "valid_until": {
                        "type": "string"
                    },
                    "status": {
                        "type": "string"
                    },
                    "sent_at": {
                        "type": "string"
                    },
                    "accepted_at": {
                        "type": "string"
                    },
                    "rejected_at": {
                        "type": "string"
                    },
                    "reject_reason": {
                        "type": "string"
                    },
                    "invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "updated_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "appinvoicing.PaymentResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "amount": {
                        "type": "string",
                        "example": "0"
                    },
                    "received_on": {
                        "type": "string"
                    },
                    "method": {
                        "type": "string"
                    },
                    "reference": {
                        "type": "string"
                    },
                    "allocated_fees": {
                        "type": "string",
                        "example": "0"
                    },
                    "allocated_interest": {
                        "type": "string",
                        "example": "0"
                    },
                    "allocated_principal": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "appinvoicing.ProductRequest": {
                "type": "object",
                "required": [
                    "name",
                    "sku"
                ],
                "properties": {
                    "sku": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 50
                    },
                    "name": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 200
                    },
                    "description": {
                        "type": "string",
                        "maxLength": 2000
                    },
                    "unit": {
                        "type": "string",
                        "maxLength": 20
                    },
                    "unit_price": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_category": {
                        "type": "string",
                        "enum": [
                            "standard",
                            "reduced"
                        ]
                    }
                }
            },
            "appinvoicing.ProductResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "sku": {
                        "type": "string"
                    },
                    "name": {
                        "type": "string"
                    },
                    "description": {
                        "type": "string"
                    },
                    "unit": {
                        "type": "string"
                    },
                    "unit_price": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_category": {
                        "type": "string"
                    },
                    "active": {
                        "type": "boolean"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "updated_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "version": {
                        "type": "integer"
                    }
                }
            },
            "appinvoicing.ReasonRequest": {
                "type": "object",
                "required": [
                    "reason"
                ],
                "properties": {
                    "reason": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 500
                    }
                }
            },
            "appinvoicing.ReceiptDownloadResponse": {
                "type": "object",
                "properties": {
                    "url": {
                        "type": "string"
                    },
                    "expires_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "appinvoicing.ReceiptUploadRequest": {
                "type": "object",
                "required": [
                    "content_type",
                    "file_name"
                ],
                "properties": {
                    "file_name": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 255
                    },
                    "content_type": {
                        "type": "string"
                    }
                }
            },
            "appinvoicing.ReceiptUploadResponse": {
                "type": "object",
                "properties": {
                    "upload_url": {
                        "type": "string"
                    },
                    "storage_key": {
                        "type": "string"
                    },
                    "expires_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "appinvoicing.RecordPaymentRequest": {
                "type": "object",
                "properties": {
                    "amount": {
                        "type": "string",
                        "example": "0"
                    },
                    "received_on": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    },
                    "method": {
                        "type": "string",
                        "enum": [
                            "bank_transfer",
                            "direct_debit",
                            "cash",
                            "card",
                            "paypal"
                        ]
                    },
                    "reference": {
                        "type": "string",
                        "maxLength": 200
                    }
                }
            },
            "appinvoicing.RunDunningRequest": {
                "type": "object",
                "properties": {
                    "run_date": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    }
                }
            },
            "appinvoicing.TaxRatesDTO": {
                "type": "object",
                "properties": {
                    "standard": {
                        "type": "string",
                        "example": "0"
                    },
                    "reduced": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "appinvoicing.UpdateCompanyRequest": {
                "type": "object",
                "required": [
                    "name"
                ],
                "properties": {
                    "name": {
                        "type": "string",
                        "minLength": 1,
                        "maxLength": 200
                    },
                    "legal_form": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "address": {
                        "$ref": "#/components/schemas/appinvoicing.AddressDTO"
                    },
                    "email": {
                        "type": "string"
                    },
                    "phone": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "vat_id": {
                        "type": "string"
                    },
                    "tax_number": {
                        "type": "string",
                        "maxLength": 50
                    },
                    "iban": {
                        "type": "string",
                        "maxLength": 34
                    },
                    "bic": {
                        "type": "string",
                        "maxLength": 11
                    },
                    "bank_name": {
                        "type": "string",
                        "maxLength": 100
                    },
                    "small_business": {
                        "type": "boolean"
                    },
                    "default_payment_term_days": {
                        "type": "integer",
                        "minimum": 0,
                        "maximum": 365
                    },
                    "tax_rates": {
                        "$ref": "#/components/schemas/appinvoicing.TaxRatesDTO"
                    },
                    "numbering": {
                        "$ref": "#/components/schemas/invoicing.NumberingSettings"
                    }
                }
            },
            "appinvoicing.UpdateInvoiceRequest": {
                "type": "object",
                "properties": {
                    "lines": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/appinvoicing.LineRequest"
                        }
                    },
                    "service_date": {
                        "type": "string",
                        "format": "date",
                        "example": "2024-05-01"
                    },
                    "payment_term_days": {
                        "type": "integer",
                        "minimum": 0,
                        "maximum": 365
                    },
                    "tax_regime": {
                        "type": "string",
                        "enum": [
                            "standard",
                            "reduced",
                            "reverse_charge",
                            "export",
                            "small_business"
                        ]
                    },
                    "notes": {
                        "type": "string",
                        "maxLength": 2000
                    }
                }
            },
            "dto.ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "details": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/dto.ValidationDetail"
                        }
                    }
                }
            },
            "dto.ErrorResponse": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "error": {
                        "$ref": "#/components/schemas/dto.ErrorInfo"
                    }
                }
            },
            "dto.Meta": {
                "type": "object",
                "properties": {
                    "total": {
                        "type": "integer",
                        "format": "int64"
                    },
                    "page": {
                        "type": "integer"
                    },
                    "page_size": {
                        "type": "integer"
                    },
                    "total_pages": {
                        "type": "integer"
                    }
                }
            },
            "dto.Response": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "data": {},
                    "error": {
                        "$ref": "#/components/schemas/dto.ErrorInfo"
                    },
                    "meta": {
                        "$ref": "#/components/schemas/dto.Meta"
                    }
                }
            },
            "dto.ValidationDetail": {
                "type": "object",
                "properties": {
                    "field": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    }
                }
            },
            "handler.HealthResponse": {
                "type": "object",
                "properties": {
                    "status": {
                        "type": "string",
                        "example": "healthy"
                    },
                    "version": {
                        "type": "string",
                        "example": "1.0.0"
                    },
                    "uptime": {
                        "type": "string",
                        "example": "1h30m45s"
                    },
                    "checks": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "string"
                        }
                    }
                }
            },
            "invoicing.CustomerKind": {
                "type": "string",
                "enum": [
                    "business",
                    "consumer"
                ]
            },
            "invoicing.DunningSettings": {
                "type": "object",
                "properties": {
                    "enabled": {
                        "type": "boolean"
                    },
                    "reminder_days": {
                        "type": "integer"
                    },
                    "first_notice_days": {
                        "type": "integer"
                    },
                    "second_notice_days": {
                        "type": "integer"
                    },
                    "third_notice_days": {
                        "type": "integer"
                    },
                    "collection_days": {
                        "type": "integer"
                    },
                    "reminder_fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "first_notice_fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "second_notice_fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "third_notice_fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "collection_fee": {
                        "type": "string",
                        "example": "0"
                    },
                    "min_days_between_notices": {
                        "type": "integer"
                    },
                    "payment_deadline_days": {
                        "type": "integer"
                    },
                    "interest_enabled": {
                        "type": "boolean"
                    },
                    "base_interest_rate": {
                        "type": "string",
                        "example": "0"
                    },
                    "business_interest_markup": {
                        "type": "string",
                        "example": "0"
                    },
                    "consumer_interest_markup": {
                        "type": "string",
                        "example": "0"
                    },
                    "business_flat_fee_enabled": {
                        "type": "boolean"
                    }
                }
            },
            "invoicing.InvoiceLine": {
                "type": "object",
                "properties": {
                    "position": {
                        "type": "integer"
                    },
                    "product_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "description": {
                        "type": "string"
                    },
                    "quantity": {
                        "type": "string",
                        "example": "0"
                    },
                    "unit": {
                        "type": "string"
                    },
                    "unit_price": {
                        "type": "string",
                        "example": "0"
                    },
                    "discount_percent": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax_category": {
                        "$ref": "#/components/schemas/invoicing.TaxCategory"
                    },
                    "tax_rate": {
                        "type": "string",
                        "example": "0"
                    },
                    "net_amount": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "invoicing.NumberingSettings": {
                "type": "object",
                "properties": {
                    "invoice_prefix": {
                        "type": "string"
                    },
                    "cancellation_prefix": {
                        "type": "string"
                    },
                    "dunning_prefix": {
                        "type": "string"
                    },
                    "offer_prefix": {
                        "type": "string"
                    },
                    "customer_prefix": {
                        "type": "string"
                    },
                    "yearly_reset": {
                        "type": "boolean"
                    },
                    "padding": {
                        "type": "integer"
                    }
                }
            },
            "invoicing.PartySnapshot": {
                "type": "object",
                "properties": {
                    "name": {
                        "type": "string"
                    },
                    "address": {
                        "$ref": "#/components/schemas/valueobject.Address"
                    },
                    "vat_id": {
                        "type": "string"
                    },
                    "email": {
                        "type": "string"
                    },
                    "kind": {
                        "$ref": "#/components/schemas/invoicing.CustomerKind"
                    }
                }
            },
            "invoicing.TaxCategory": {
                "type": "string",
                "enum": [
                    "standard",
                    "reduced"
                ]
            },
            "invoicing.TaxGroup": {
                "type": "object",
                "properties": {
                    "rate": {
                        "type": "string",
                        "example": "0"
                    },
                    "net": {
                        "type": "string",
                        "example": "0"
                    },
                    "tax": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "report.AgingBucket": {
                "type": "string",
                "enum": [
                    "current",
                    "1-30",
                    "31-60",
                    "61-90",
                    "90+"
                ]
            },
            "report.BucketTotal": {
                "type": "object",
                "properties": {
                    "bucket": {
                        "$ref": "#/components/schemas/report.AgingBucket"
                    },
                    "count": {
                        "type": "integer"
                    },
                    "amount": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "report.OpenItem": {
                "type": "object",
                "properties": {
                    "invoice_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "number": {
                        "type": "string"
                    },
                    "customer_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "customer_name": {
                        "type": "string"
                    },
                    "issue_date": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "due_date": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "days_overdue": {
                        "type": "integer"
                    },
                    "bucket": {
                        "$ref": "#/components/schemas/report.AgingBucket"
                    },
                    "dunning_level": {
                        "type": "string"
                    },
                    "dunning_blocked": {
                        "type": "boolean"
                    },
                    "gross_total": {
                        "type": "string",
                        "example": "0"
                    },
                    "open_principal": {
                        "type": "string",
                        "example": "0"
                    },
                    "open_fees": {
                        "type": "string",
                        "example": "0"
                    },
                    "open_interest": {
                        "type": "string",
                        "example": "0"
                    },
                    "open_total": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "report.OpenItemsReport": {
                "type": "object",
                "properties": {
                    "tenant_id": {
                        "type": "string",
                        "format": "uuid"
                    },
                    "as_of": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "items": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/report.OpenItem"
                        }
                    },
                    "buckets": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/report.BucketTotal"
                        }
                    },
                    "total_count": {
                        "type": "integer"
                    },
                    "total": {
                        "type": "string",
                        "example": "0"
                    }
                }
            },
            "valueobject.Address": {
                "type": "object",
                "properties": {
                    "street": {
                        "type": "string"
                    },
                    "postal_code": {
                        "type": "string"
                    },
                    "city": {
                        "type": "string"
                    },
                    "country": {
                        "type": "string"
                    }
                }
            }
        },
        "securitySchemes": {
            "BearerAuth": {
                "type": "apiKey",
                "description": "Bearer token authentication. Format: \"Bearer {token}\"",
                "name": "Authorization",
                "in": "header"
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Faktura API",
	Description:      "Invoicing, dunning and open-items backend for German small businesses",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
