package reminder

import "errors"

var ErrParseType = errors.New("invalid reminder type")

type Type struct {
	v string
}

func (t Type) String() string {
	return t.v
}

func ParseType(value string) (Type, error) {
	switch value {
	case "payment":
		return TypePayment, nil
	case "savings":
		return TypeSavings, nil
	default:
		return TypeUnknown, ErrParseType
	}
}

var (
	TypeUnknown = Type{}
	TypePayment = Type{v: "payment"}
	TypeSavings = Type{v: "savings"}
)

// NotificationBody returns the notification wording for the reminder type.
func (t Type) NotificationBody() string {
	if t == TypeSavings {
		return "Time to contribute to your savings goal."
	}
	return "Your recurring payment is coming up."
}
