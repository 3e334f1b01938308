package keymap

import (
	"github.com/dshills/keychord/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "g d", "Ctrl+S", "Escape", "?"
	Keys string

	// Pattern is the parsed form of Keys. NewTable fills it in.
	Pattern key.Sequence

	// Action is what happens when the binding fires.
	Action Action

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys string, action Action) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// Match checks if this binding's pattern equals the given sequence.
func (b *Binding) Match(seq key.Sequence) bool {
	if b == nil {
		return false
	}
	return b.Pattern.Equals(seq)
}

// IsStrictPrefix checks if seq is a proper prefix of this binding's pattern.
func (b *Binding) IsStrictPrefix(seq key.Sequence) bool {
	if b == nil {
		return false
	}
	return b.Pattern.HasStrictPrefix(seq)
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
