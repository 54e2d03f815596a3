package enums

import "fmt"

// ComponentType identifies a component inventory category. Each type maps
// to its own inventory table; the mapping is the only way table names reach
// SQL, so raw input can never select an arbitrary table.
type ComponentType string

const (
	ComponentTypeMosfet          ComponentType = "mosfet"
	ComponentTypeCapacitor       ComponentType = "capacitor"
	ComponentTypeDiode           ComponentType = "diode"
	ComponentTypeMicrocontroller ComponentType = "microcontroller"
	ComponentTypePowerIC         ComponentType = "power_ic"
	ComponentTypeResistor        ComponentType = "resistor"
)

var validComponentTypes = []ComponentType{
	ComponentTypeMosfet,
	ComponentTypeCapacitor,
	ComponentTypeDiode,
	ComponentTypeMicrocontroller,
	ComponentTypePowerIC,
	ComponentTypeResistor,
}

var componentTypeTables = map[ComponentType]string{
	ComponentTypeMosfet:          "mosfets",
	ComponentTypeCapacitor:       "capacitors",
	ComponentTypeDiode:           "diodes",
	ComponentTypeMicrocontroller: "microcontrollers",
	ComponentTypePowerIC:         "power_ics",
	ComponentTypeResistor:        "resistors",
}

// String implements fmt.Stringer.
func (c ComponentType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComponentType.
func (c ComponentType) IsValid() bool {
	_, ok := componentTypeTables[c]
	return ok
}

// Table returns the inventory table backing the component type.
func (c ComponentType) Table() string {
	return componentTypeTables[c]
}

var componentTypeLabels = map[ComponentType]string{
	ComponentTypeMosfet:          "MOSFET",
	ComponentTypeCapacitor:       "Capacitor",
	ComponentTypeDiode:           "Diode",
	ComponentTypeMicrocontroller: "Microcontroller",
	ComponentTypePowerIC:         "Power IC",
	ComponentTypeResistor:        "Resistor",
}

// Label returns the display name for the component type.
func (c ComponentType) Label() string {
	return componentTypeLabels[c]
}

// ComponentTypes returns every known component type in a stable order.
func ComponentTypes() []ComponentType {
	out := make([]ComponentType, len(validComponentTypes))
	copy(out, validComponentTypes)
	return out
}

// ParseComponentType converts raw input into a ComponentType.
func ParseComponentType(value string) (ComponentType, error) {
	for _, candidate := range validComponentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid component type %q", value)
}
