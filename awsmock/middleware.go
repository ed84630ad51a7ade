package awsmock

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/smithy-go/middleware"

	"github.com/openkcm/sdkmock/intercept"
	"github.com/openkcm/sdkmock/internal/constants"
	"github.com/openkcm/sdkmock/internal/errs"
)

const sdkName = "aws-sdk-go-v2"

var (
	ErrNoOutput             = errors.New("override completed without output")
	ErrUnexpectedOutputType = errors.New("override returned an unexpected output type")
)

// Middleware answers the operation from the adapter while it is installed and
// hands the call to the rest of the stack otherwise.
func Middleware(a *intercept.Adapter) middleware.InitializeMiddleware {
	return middleware.InitializeMiddlewareFunc(constants.MiddlewareID, func(
		ctx context.Context,
		in middleware.InitializeInput,
		next middleware.InitializeHandler,
	) (middleware.InitializeOutput, middleware.Metadata, error) {
		if !a.Installed() {
			return next.HandleInitialize(ctx, in)
		}

		var metadata middleware.Metadata

		operation := awsmiddleware.GetOperationName(ctx)

		req := intercept.NewRequest(awsmiddleware.GetServiceID(ctx), operation, in.Parameters)
		req.Transport = intercept.Transport{SDK: sdkName, Region: awsmiddleware.GetRegion(ctx)}

		data, err := a.Promise(ctx, req).Await(ctx)
		if err != nil {
			return middleware.InitializeOutput{}, metadata, err
		}

		err = checkOutput(operation, data)
		if err != nil {
			return middleware.InitializeOutput{}, metadata, errs.Wrapf(err, "%s.%s", req.Service, operation)
		}

		awsmiddleware.SetRequestIDMetadata(&metadata, req.ID)

		return middleware.InitializeOutput{Result: data}, metadata, nil
	})
}

// APIOption adds Middleware to a stack right after the service metadata is
// registered, so input validation has not run yet. Adding it to a stack that
// already has it is a no-op.
func APIOption(a *intercept.Adapter) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		if _, ok := stack.Initialize.Get(constants.MiddlewareID); ok {
			return nil
		}

		mw := Middleware(a)

		if _, ok := stack.Initialize.Get(constants.ServiceMetadataMiddlewareID); ok {
			return stack.Initialize.Insert(mw, constants.ServiceMetadataMiddlewareID, middleware.After)
		}

		return stack.Initialize.Add(mw, middleware.After)
	}
}

// checkOutput makes sure data is a non-nil *<operation>Output so the generated
// client can type assert it.
func checkOutput(operation string, data any) error {
	if data == nil {
		return ErrNoOutput
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: %T", ErrUnexpectedOutputType, data)
	}

	if v.IsNil() {
		return ErrNoOutput
	}

	if operation != "" && v.Elem().Type().Name() != operation+"Output" {
		return fmt.Errorf("%w: %T", ErrUnexpectedOutputType, data)
	}

	return nil
}
