package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/navgridgo/internal/ctxlog"
)

// Validate performs a strict startup check over every registered entry: the
// factory functions must be present, and each config struct must be a
// pointer to a struct whose exported fields all carry hcl tags, so the
// markup decoder can reach every field an author might set.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.Kinds() {
		e := r.actions[kind]
		if e.NewConfig == nil || e.Build == nil {
			errs = append(errs, fmt.Sprintf("action '%s': entry must provide NewConfig and Build", kind))
			continue
		}

		cfg := e.NewConfig()
		t := reflect.TypeOf(cfg)
		if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("action '%s': NewConfig must return a pointer to a struct, got %T", kind, cfg))
			continue
		}

		st := t.Elem()
		for i := 0; i < st.NumField(); i++ {
			field := st.Field(i)
			if !field.IsExported() {
				continue
			}
			tag := strings.Split(field.Tag.Get("hcl"), ",")[0]
			if tag == "" {
				errs = append(errs, fmt.Sprintf("action '%s': config field '%s' has no hcl tag", kind, field.Name))
			}
		}
		logger.Debug("Validated action entry.", "kind", kind, "config", st.String())
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
