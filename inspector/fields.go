package inspector

import (
	"github.com/pthm-cable/amoebot/attribute"
	"github.com/pthm-cable/amoebot/particle"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetLabel Widget = iota
	WidgetNumber
	WidgetBool
	WidgetChoice
)

func (w Widget) String() string {
	switch w {
	case WidgetNumber:
		return "number"
	case WidgetBool:
		return "bool"
	case WidgetChoice:
		return "choice"
	default:
		return "label"
	}
}

// Field is one attribute as the inspector shows it.
type Field struct {
	Name    string
	Kind    attribute.Kind
	Text    string
	Widget  Widget
	Options map[string]string

	// Members lists the accepted values of a choice field.
	Members []string
}

// memberLister is implemented by enumeration attributes.
type memberLister interface {
	Members() []string
}

// ExtractFields lists the attributes of p in declaration order.
func ExtractFields(p *particle.Particle) []Field {
	attrs := p.Attributes()
	fields := make([]Field, 0, len(attrs))
	for _, a := range attrs {
		fields = append(fields, fieldOf(a))
	}
	return fields
}

func fieldOf(a attribute.Attribute) Field {
	f := Field{
		Name:    a.Name(),
		Kind:    a.Kind(),
		Text:    a.String(),
		Widget:  autoDetectWidget(a.Kind()),
		Options: make(map[string]string),
	}
	if ml, ok := a.(memberLister); ok {
		f.Members = ml.Members()
	}
	return f
}

// autoDetectWidget chooses a widget based on the attribute kind.
func autoDetectWidget(k attribute.Kind) Widget {
	switch k {
	case attribute.KindInt, attribute.KindFloat:
		return WidgetNumber
	case attribute.KindBool:
		return WidgetBool
	case attribute.KindEnum:
		return WidgetChoice
	default:
		return WidgetLabel
	}
}
