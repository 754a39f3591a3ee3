// Package hooking lets observers attach to the registry, the frame handler
// and the engine without those domains knowing about recorders or monitors.
package hooking

// HookPos names a site where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation.
type HookCtx struct {
	// Domain is the hookable object raising the hook.
	Domain Hookable

	// Pos identifies the site.
	Pos *HookPos

	// Item is the primary subject: a message, a variable, an exception.
	Item any

	// Detail holds optional auxiliary data; hook sites may leave it nil.
	Detail any
}

// Hookable is implemented by domains that observers can attach to.
type Hookable interface {
	// AcceptHook registers a hook. Hooks are registered during setup and
	// stay for the lifetime of the domain.
	AcceptHook(hook Hook)

	NumHooks() int
	Hooks() []Hook

	// InvokeHook calls every registered hook in registration order.
	InvokeHook(ctx HookCtx)
}

// Hook observes a Hookable.
type Hook interface {
	Func(ctx HookCtx)
}

// FuncHook adapts a plain function to the Hook interface.
type FuncHook struct {
	f func(ctx HookCtx)
}

// NewFuncHook wraps f.
func NewFuncHook(f func(ctx HookCtx)) *FuncHook {
	return &FuncHook{f: f}
}

// Func calls the wrapped function.
func (h *FuncHook) Func(ctx HookCtx) {
	h.f(ctx)
}

// HookableBase implements Hookable for embedding.
type HookableBase struct {
	hooks []Hook
}

// NewHookableBase returns a HookableBase without hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// NumHooks returns how many hooks are attached.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns the attached hooks.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// AcceptHook registers a hook. Registering the same hook twice panics, as it
// is a wiring mistake made during setup.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hooks {
		if existing == hook {
			panic("hooking: hook attached twice")
		}
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook triggers the registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

var _ Hookable = (*HookableBase)(nil)
