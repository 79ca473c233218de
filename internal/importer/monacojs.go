package importer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dop251/goja"

	"github.com/unkn0wn-root/tinct/internal/errdef"
)

// evalMonacoScript runs a theme script in a sandboxed VM and returns the
// captured theme as JSON. Scripts may call monaco.editor.defineTheme,
// assign module.exports, or evaluate to the theme object directly.
func evalMonacoScript(ctx context.Context, src string) (string, []byte, error) {
	vm := goja.New()
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		if done := ctx.Done(); done != nil {
			go func() {
				<-done
				vm.Interrupt(ctx.Err())
			}()
		}
	}

	var capturedName string
	var captured goja.Value
	editor := map[string]interface{}{
		"defineTheme": func(name string, data goja.Value) {
			capturedName = name
			captured = data
		},
	}
	if err := vm.Set("monaco", map[string]interface{}{"editor": editor}); err != nil {
		return "", nil, errdef.Wrap(errdef.CodeImport, err, "bind monaco api")
	}

	console := map[string]func(goja.FunctionCall) goja.Value{
		"log":   func(goja.FunctionCall) goja.Value { return goja.Undefined() },
		"warn":  func(goja.FunctionCall) goja.Value { return goja.Undefined() },
		"error": func(goja.FunctionCall) goja.Value { return goja.Undefined() },
	}
	if err := vm.Set("console", console); err != nil {
		return "", nil, errdef.Wrap(errdef.CodeImport, err, "bind console api")
	}

	module := map[string]interface{}{}
	if err := vm.Set("module", module); err != nil {
		return "", nil, errdef.Wrap(errdef.CodeImport, err, "bind module api")
	}

	value, err := vm.RunString(src)
	if err != nil {
		if ctx != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", nil, ctxErr
			}
			var interrupted *goja.InterruptedError
			if errors.As(err, &interrupted) && ctx.Err() != nil {
				return "", nil, ctx.Err()
			}
		}
		return "", nil, errdef.Wrap(errdef.CodeImport, err, "execute theme script")
	}

	payload := exportedTheme(captured, module, value)
	if payload == nil {
		return "", nil, errdef.New(errdef.CodeImport, "theme script produced no theme object")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", nil, errdef.Wrap(errdef.CodeImport, err, "encode scripted theme")
	}
	return capturedName, data, nil
}

func exportedTheme(captured goja.Value, module map[string]interface{}, value goja.Value) interface{} {
	if captured != nil {
		if exported := captured.Export(); exported != nil {
			return exported
		}
	}
	if exports, ok := module["exports"]; ok && exports != nil {
		return exports
	}
	if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		if exported := value.Export(); exported != nil {
			if _, ok := exported.(map[string]interface{}); ok {
				return exported
			}
		}
	}
	return nil
}
