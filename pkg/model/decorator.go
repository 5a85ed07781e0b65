package model

// Decorator enriches a form model after it has been defined, for example to
// prefix endpoints or localise labels.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// EndpointPrefix returns a decorator that mounts the form under prefix.
func EndpointPrefix(prefix string) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		if prefix == "" || form == nil {
			return nil
		}
		form.Endpoint = joinEndpoint(prefix, form.Endpoint)
		return nil
	})
}

func joinEndpoint(prefix, path string) string {
	for len(prefix) > 0 && prefix[len(prefix)-1] == '/' {
		prefix = prefix[:len(prefix)-1]
	}
	if path == "" {
		return prefix
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return prefix + path
}
