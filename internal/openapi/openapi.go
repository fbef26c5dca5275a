// Package openapi builds the OpenAPI 3 description of the catalog HTTP API.
package openapi

import (
	"net/http"

	"github.com/abgdnv/catalog/internal/store"
	"github.com/getkin/kin-openapi/openapi3"
)

const schemasPrefix = "#/components/schemas/"

func ref(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(schemasPrefix+name, nil)
}

func arrayOf(name string) *openapi3.SchemaRef {
	s := openapi3.NewArraySchema()
	s.Items = ref(name)
	return openapi3.NewSchemaRef("", s)
}

func enum[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func jsonResponse(status int, description string, schema *openapi3.SchemaRef) openapi3.NewResponsesOption {
	return openapi3.WithStatus(status, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema),
	})
}

func emptyResponse(status int, description string) openapi3.NewResponsesOption {
	return openapi3.WithStatus(status, &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description),
	})
}

func badRequest() openapi3.NewResponsesOption {
	return jsonResponse(http.StatusBadRequest, "Invalid input, validation failure or conflicting record", ref("Error"))
}

func notFound(what string) openapi3.NewResponsesOption {
	return jsonResponse(http.StatusNotFound, what+" not found", ref("Error"))
}

func idParameter() *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").
			WithDescription("Record identifier").
			WithSchema(openapi3.NewUUIDSchema()),
	}
}

func queryParameter(name, description string, schema *openapi3.Schema) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: openapi3.NewQueryParameter(name).WithDescription(description).WithSchema(schema),
	}
}

func jsonBody(schema string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref(schema)),
	}
}

func operation(tag, id, summary string, responses ...openapi3.NewResponsesOption) *openapi3.Operation {
	return &openapi3.Operation{
		Tags:        []string{tag},
		OperationID: id,
		Summary:     summary,
		Responses:   openapi3.NewResponses(responses...),
	}
}

func withParams(op *openapi3.Operation, params ...*openapi3.ParameterRef) *openapi3.Operation {
	op.Parameters = append(op.Parameters, params...)
	return op
}

func withBody(op *openapi3.Operation, schema string) *openapi3.Operation {
	op.RequestBody = jsonBody(schema)
	return op
}

// Build returns the OpenAPI document of the service API.
func Build(version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Catalog API",
			Description: "CRUD service for users and products with an in-memory store.",
			Version:     version,
			Contact:     &openapi3.Contact{Name: "API Support", Email: "support@example.com"},
			License:     &openapi3.License{Name: "MIT", URL: "https://opensource.org/licenses/MIT"},
		},
		Servers: openapi3.Servers{{URL: "/", Description: "Current host"}},
		Tags: openapi3.Tags{
			{Name: "User", Description: "User management"},
			{Name: "Product", Description: "Product management"},
			{Name: "System", Description: "Service operations"},
		},
		Paths:      paths(),
		Components: &openapi3.Components{Schemas: schemas()},
	}
}

func paths() *openapi3.Paths {
	p := openapi3.NewPaths()

	p.Set("/health", &openapi3.PathItem{
		Get: operation("System", "healthCheck", "Service health",
			jsonResponse(http.StatusOK, "Service is healthy", ref("Health"))),
	})

	p.Set("/api/users", &openapi3.PathItem{
		Get: withParams(
			operation("User", "listUsers", "List users, optionally filtered by role",
				jsonResponse(http.StatusOK, "Users in creation order", arrayOf("User")),
				badRequest()),
			queryParameter("role", "Only users with this role", openapi3.NewStringSchema().WithEnum(enum(store.Roles)...)),
		),
		Post: withBody(
			operation("User", "createUser", "Create a user",
				jsonResponse(http.StatusCreated, "User created", ref("User")),
				badRequest()),
			"UserCreate"),
	})
	p.Set("/api/users/active", &openapi3.PathItem{
		Get: operation("User", "listActiveUsers", "List active users",
			jsonResponse(http.StatusOK, "Active users", arrayOf("User"))),
	})
	p.Set("/api/users/{id}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{idParameter()},
		Get: operation("User", "getUser", "Get a user by id",
			jsonResponse(http.StatusOK, "The user", ref("User")),
			badRequest(), notFound("User")),
		Put: withBody(
			operation("User", "replaceUser", "Update a user",
				jsonResponse(http.StatusOK, "User updated", ref("User")),
				badRequest(), notFound("User")),
			"UserUpdate"),
		Patch: withBody(
			operation("User", "updateUser", "Partially update a user",
				jsonResponse(http.StatusOK, "User updated", ref("User")),
				badRequest(), notFound("User")),
			"UserUpdate"),
		Delete: operation("User", "deleteUser", "Delete a user",
			emptyResponse(http.StatusNoContent, "User deleted"),
			badRequest(), notFound("User")),
	})

	p.Set("/api/products", &openapi3.PathItem{
		Get: withParams(
			operation("Product", "listProducts", "List products. search takes precedence over category",
				jsonResponse(http.StatusOK, "Products in creation order", arrayOf("Product")),
				badRequest()),
			queryParameter("category", "Only products in this category", openapi3.NewStringSchema().WithEnum(enum(store.Categories)...)),
			queryParameter("search", "Case-insensitive text matched against name and description", openapi3.NewStringSchema()),
		),
		Post: withBody(
			operation("Product", "createProduct", "Create a product",
				jsonResponse(http.StatusCreated, "Product created", ref("Product")),
				badRequest()),
			"ProductCreate"),
	})
	p.Set("/api/products/available", &openapi3.PathItem{
		Get: operation("Product", "listAvailableProducts", "List products that are available and in stock",
			jsonResponse(http.StatusOK, "Available products", arrayOf("Product"))),
	})
	p.Set("/api/products/{id}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{idParameter()},
		Get: operation("Product", "getProduct", "Get a product by id",
			jsonResponse(http.StatusOK, "The product", ref("Product")),
			badRequest(), notFound("Product")),
		Put: withBody(
			operation("Product", "replaceProduct", "Update a product",
				jsonResponse(http.StatusOK, "Product updated", ref("Product")),
				badRequest(), notFound("Product")),
			"ProductUpdate"),
		Patch: withBody(
			operation("Product", "updateProduct", "Partially update a product",
				jsonResponse(http.StatusOK, "Product updated", ref("Product")),
				badRequest(), notFound("Product")),
			"ProductUpdate"),
		Delete: operation("Product", "deleteProduct", "Delete a product",
			emptyResponse(http.StatusNoContent, "Product deleted"),
			badRequest(), notFound("Product")),
	})
	p.Set("/api/products/{id}/stock", &openapi3.PathItem{
		Parameters: openapi3.Parameters{idParameter()},
		Patch: withBody(
			operation("Product", "updateProductStock", "Adjust product stock by a signed quantity",
				jsonResponse(http.StatusOK, "Stock adjusted", ref("Product")),
				badRequest(), notFound("Product")),
			"StockUpdate"),
	})

	return p
}

func schemas() openapi3.Schemas {
	roles := enum(store.Roles)
	categories := enum(store.Categories)

	user := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("role", openapi3.NewStringSchema().WithEnum(roles...)).
		WithProperty("isActive", openapi3.NewBoolSchema()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
	user.Required = []string{"id", "email", "name", "role", "isActive", "createdAt", "updatedAt"}

	userCreate := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(2)).
		WithProperty("role", openapi3.NewStringSchema().WithEnum(roles...))
	userCreate.Required = []string{"email", "name", "role"}

	userUpdate := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(2)).
		WithProperty("role", openapi3.NewStringSchema().WithEnum(roles...)).
		WithProperty("isActive", openapi3.NewBoolSchema())

	product := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("stock", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("category", openapi3.NewStringSchema().WithEnum(categories...)).
		WithProperty("sku", openapi3.NewStringSchema()).
		WithProperty("isAvailable", openapi3.NewBoolSchema()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
	product.Required = []string{"id", "name", "description", "price", "stock", "category", "sku", "isAvailable", "createdAt", "updatedAt"}

	productFields := func() *openapi3.Schema {
		return openapi3.NewObjectSchema().
			WithProperty("name", openapi3.NewStringSchema().WithMinLength(2).WithMaxLength(100)).
			WithProperty("description", openapi3.NewStringSchema().WithMinLength(10).WithMaxLength(500)).
			WithProperty("price", openapi3.NewFloat64Schema().WithMin(0).WithExclusiveMin(true)).
			WithProperty("stock", openapi3.NewIntegerSchema().WithMin(0)).
			WithProperty("category", openapi3.NewStringSchema().WithEnum(categories...)).
			WithProperty("sku", openapi3.NewStringSchema().WithMinLength(3).WithMaxLength(20))
	}
	productCreate := productFields()
	productCreate.Required = []string{"name", "description", "price", "stock", "category", "sku"}
	productUpdate := productFields().WithProperty("isAvailable", openapi3.NewBoolSchema())

	quantity := openapi3.NewIntegerSchema()
	quantity.Description = "Signed change applied to the current stock"
	stockUpdate := openapi3.NewObjectSchema().WithProperty("quantity", quantity)
	stockUpdate.Required = []string{"quantity"}

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("validation_errors", openapi3.NewObjectSchema().
			WithAdditionalProperties(openapi3.NewStringSchema()))

	uptime := openapi3.NewFloat64Schema()
	uptime.Description = "Seconds since start"
	health := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema()).
		WithProperty("timestamp", openapi3.NewDateTimeSchema()).
		WithProperty("uptime", uptime)
	health.Required = []string{"status", "timestamp", "uptime"}

	return openapi3.Schemas{
		"User":          openapi3.NewSchemaRef("", user),
		"UserCreate":    openapi3.NewSchemaRef("", userCreate),
		"UserUpdate":    openapi3.NewSchemaRef("", userUpdate),
		"Product":       openapi3.NewSchemaRef("", product),
		"ProductCreate": openapi3.NewSchemaRef("", productCreate),
		"ProductUpdate": openapi3.NewSchemaRef("", productUpdate),
		"StockUpdate":   openapi3.NewSchemaRef("", stockUpdate),
		"Error":         openapi3.NewSchemaRef("", errorSchema),
		"Health":        openapi3.NewSchemaRef("", health),
	}
}
