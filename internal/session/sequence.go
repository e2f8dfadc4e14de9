package session

import (
	"github.com/smazurov/kbcontrol/internal/device"
	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/protocol"
)

// write is one frame destined for one endpoint.
type write struct {
	endpoint string
	frame    []byte
}

// plan is an ordered list of writes. Order matters: the hardware latches
// zones one after another.
type plan []write

func dynamicWrite(f protocol.DynamicFrame) write {
	return write{endpoint: device.EndpointDynamic, frame: f.Bytes()}
}

func staticWrite(f protocol.StaticFrame) write {
	return write{endpoint: device.EndpointStatic, frame: f.Bytes()}
}

// enterDynamic starts the hardware animation.
func enterDynamic(s keyboard.State) plan {
	return plan{dynamicWrite(protocol.EncodeDynamic(s))}
}

// enterStatic writes zones 1, 2, 3 in order, each optionally followed by a
// brightness companion on the dynamic endpoint.
func enterStatic(s keyboard.State, companion bool) (plan, error) {
	p := make(plan, 0, 2*keyboard.ZoneCount)
	for zone := 1; zone <= keyboard.ZoneCount; zone++ {
		f, err := protocol.EncodeStaticZone(s, zone)
		if err != nil {
			return nil, err
		}
		p = append(p, staticWrite(f))
		if companion {
			p = append(p, dynamicWrite(protocol.EncodeBrightnessCompanion(s)))
		}
	}
	return p, nil
}

// enterMode applies the whole state for its mode.
func enterMode(s keyboard.State, companion bool) (plan, error) {
	if s.Mode == keyboard.ModeDynamic {
		return enterDynamic(s), nil
	}
	return enterStatic(s, companion)
}

// brightnessChange sends a single brightness frame on the dynamic endpoint.
func brightnessChange(s keyboard.State) plan {
	return plan{dynamicWrite(protocol.EncodeBrightness(s))}
}

// dynamicParamChange resends the animation. In static mode the change is
// only stored; it takes effect on the next switch to dynamic.
func dynamicParamChange(s keyboard.State) plan {
	if s.Mode != keyboard.ModeDynamic {
		return nil
	}
	return enterDynamic(s)
}

// zoneColorChange writes one set-color frame without companion. In dynamic
// mode the change is only stored.
func zoneColorChange(s keyboard.State, zone int) (plan, error) {
	if s.Mode != keyboard.ModeStatic {
		return nil, nil
	}
	f, err := protocol.EncodeStaticZone(s, zone)
	if err != nil {
		return nil, err
	}
	return plan{staticWrite(f)}, nil
}

// zoneToggle writes one toggle frame without companion. In dynamic mode the
// change is only stored.
func zoneToggle(s keyboard.State, zone int) (plan, error) {
	if s.Mode != keyboard.ModeStatic {
		return nil, nil
	}
	f, err := protocol.EncodeZoneToggle(s, zone)
	if err != nil {
		return nil, err
	}
	return plan{staticWrite(f)}, nil
}
