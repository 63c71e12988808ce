package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tradegate/internal/fault"
	"tradegate/internal/rpc"
	"tradegate/internal/service/auth"
)

// validate checks decoded operation inputs. Failure details name fields by
// their json tag so they match what the caller actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validated runs struct validation and converts the first failure into a
// client fault naming the offending parameter.
func validated(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fault.ValidationError(validationDetail(fe), fe.Field())
	}
	return fault.ValidationError("Invalid parameters", "")
}

func validationDetail(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// authenticate resolves the bearer token for operations that require one. A
// missing token and an unverifiable token yield distinct faults; every
// unverifiable-token cause collapses into the same one.
func authenticate(ctx context.Context, tokens auth.TokenService, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, fault.AuthenticationRequired()
	}

	claims, err := tokens.Verify(ctx, token)
	if err != nil {
		return nil, fault.InvalidToken()
	}

	return claims, nil
}

// register wires a public operation with a typed input.
func register[T any](d *rpc.Dispatcher, name string, fn func(ctx context.Context, in *T) (any, error)) {
	d.Register(rpc.Operation{
		Name:     name,
		NewInput: func() any { return new(T) },
		Handle: func(ctx context.Context, input any, _ string) (any, error) {
			in := input.(*T)
			if err := validated(in); err != nil {
				return nil, err
			}
			return fn(ctx, in)
		},
	})
}

// registerAuthed wires an operation that needs a verified caller. The token
// is checked before input validation so authentication faults win over
// validation faults.
func registerAuthed[T any](
	d *rpc.Dispatcher,
	tokens auth.TokenService,
	name string,
	fn func(ctx context.Context, claims *auth.Claims, in *T) (any, error),
) {
	d.Register(rpc.Operation{
		Name:         name,
		RequiresAuth: true,
		NewInput:     func() any { return new(T) },
		Handle: func(ctx context.Context, input any, token string) (any, error) {
			claims, err := authenticate(ctx, tokens, token)
			if err != nil {
				return nil, err
			}
			in := input.(*T)
			if err := validated(in); err != nil {
				return nil, err
			}
			return fn(ctx, claims, in)
		},
	})
}

// registerBare wires a public operation that takes no parameters.
func registerBare(d *rpc.Dispatcher, name string, fn func(ctx context.Context) (any, error)) {
	d.Register(rpc.Operation{
		Name: name,
		Handle: func(ctx context.Context, _ any, _ string) (any, error) {
			return fn(ctx)
		},
	})
}

// registerBareAuthed wires a parameterless operation that needs a verified
// caller.
func registerBareAuthed(
	d *rpc.Dispatcher,
	tokens auth.TokenService,
	name string,
	fn func(ctx context.Context, claims *auth.Claims) (any, error),
) {
	d.Register(rpc.Operation{
		Name:         name,
		RequiresAuth: true,
		Handle: func(ctx context.Context, _ any, token string) (any, error) {
			claims, err := authenticate(ctx, tokens, token)
			if err != nil {
				return nil, err
			}
			return fn(ctx, claims)
		},
	})
}

// RegisterAll binds every operation onto the dispatcher. Registration order
// is the order the schema directory reports.
func RegisterAll(
	d *rpc.Dispatcher,
	tokens auth.TokenService,
	users *UserService,
	products *ProductService,
	orders *OrderService,
) {
	register(d, "CreateUser", func(ctx context.Context, in *CreateUserInput) (any, error) {
		return users.CreateUser(ctx, in)
	})
	registerBare(d, "GetAllUsers", func(ctx context.Context) (any, error) {
		return users.ListUsers(ctx)
	})
	register(d, "GetUserById", func(ctx context.Context, in *GetUserInput) (any, error) {
		return users.GetUser(ctx, in)
	})
	registerAuthed(d, tokens, "UpdateUser", func(ctx context.Context, claims *auth.Claims, in *UpdateUserInput) (any, error) {
		return users.UpdateUser(ctx, claims, in)
	})
	registerAuthed(d, tokens, "DeleteUser", func(ctx context.Context, claims *auth.Claims, in *DeleteUserInput) (any, error) {
		return nil, users.DeleteUser(ctx, claims, in)
	})
	register(d, "Login", func(ctx context.Context, in *LoginInput) (any, error) {
		return users.Login(ctx, in)
	})
	registerBareAuthed(d, tokens, "Logout", func(ctx context.Context, _ *auth.Claims) (any, error) {
		// Tokens are stateless, so validating the caller's token is the
		// whole operation.
		return nil, nil
	})
	registerBare(d, "GetAllProducts", func(ctx context.Context) (any, error) {
		return products.ListProducts(ctx)
	})
	registerAuthed(d, tokens, "CreateProduct", func(ctx context.Context, claims *auth.Claims, in *CreateProductInput) (any, error) {
		return products.CreateProduct(ctx, claims, in)
	})
	register(d, "GetProductById", func(ctx context.Context, in *GetProductInput) (any, error) {
		return products.GetProduct(ctx, in)
	})
	registerAuthed(d, tokens, "UpdateProduct", func(ctx context.Context, claims *auth.Claims, in *UpdateProductInput) (any, error) {
		return products.UpdateProduct(ctx, claims, in)
	})
	registerAuthed(d, tokens, "DeleteProduct", func(ctx context.Context, claims *auth.Claims, in *DeleteProductInput) (any, error) {
		return nil, products.DeleteProduct(ctx, claims, in)
	})
	registerBareAuthed(d, tokens, "GetAllOrders", func(ctx context.Context, claims *auth.Claims) (any, error) {
		return orders.ListOrders(ctx, claims)
	})
	registerAuthed(d, tokens, "CreateOrder", func(ctx context.Context, claims *auth.Claims, in *CreateOrderInput) (any, error) {
		return orders.CreateOrder(ctx, claims, in)
	})
	registerAuthed(d, tokens, "GetOrderById", func(ctx context.Context, claims *auth.Claims, in *GetOrderInput) (any, error) {
		return orders.GetOrder(ctx, claims, in)
	})
	registerAuthed(d, tokens, "UpdateOrder", func(ctx context.Context, claims *auth.Claims, in *UpdateOrderInput) (any, error) {
		return orders.UpdateOrder(ctx, claims, in)
	})
	registerAuthed(d, tokens, "DeleteOrder", func(ctx context.Context, claims *auth.Claims, in *DeleteOrderInput) (any, error) {
		return nil, orders.DeleteOrder(ctx, claims, in)
	})
}
