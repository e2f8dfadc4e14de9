package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/kbcontrol/internal/api/models"
	"github.com/smazurov/kbcontrol/internal/device"
	"github.com/smazurov/kbcontrol/internal/keyboard"
	"github.com/smazurov/kbcontrol/internal/session"
)

// registerKeyboardRoutes registers state and command endpoints.
func (s *Server) registerKeyboardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-keyboard",
		Method:      http.MethodGet,
		Path:        "/api/keyboard",
		Summary:     "Get Keyboard State",
		Description: "Current lighting state as last written to the hardware",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.KeyboardResponse, error) {
		return &models.KeyboardResponse{Body: toKeyboardData(s.controller.State())}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "put-keyboard",
		Method:      http.MethodPut,
		Path:        "/api/keyboard",
		Summary:     "Replace Keyboard State",
		Description: "Replace the whole state and write it to the hardware. Out-of-range values are clamped.",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.KeyboardUpdateRequest) (*models.CommandResponse, error) {
		state, err := fromKeyboardData(input.Body)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return s.result(s.controller.Apply(state))
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "reapply-keyboard",
		Method:      http.MethodPost,
		Path:        "/api/keyboard/apply",
		Summary:     "Reapply State",
		Description: "Write the current state to the hardware again, e.g. after resume from suspend",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{401, 502, 503},
	}, func(_ context.Context, _ *struct{}) (*models.CommandResponse, error) {
		return s.result(s.controller.Reapply())
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-mode",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/mode",
		Summary:     "Set Mode",
		Description: "Switch between static zones and a dynamic effect. The whole state for the new mode is written.",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.ModeRequest) (*models.CommandResponse, error) {
		m, err := keyboard.ParseMode(input.Body.Mode)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return s.dispatch(session.SetMode{Mode: m})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-brightness",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/brightness",
		Summary:     "Set Brightness",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 502, 503},
	}, func(_ context.Context, input *models.BrightnessRequest) (*models.CommandResponse, error) {
		return s.dispatch(session.SetBrightness{Brightness: input.Body.Brightness})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-effect",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/effect",
		Summary:     "Set Effect",
		Description: "Stored in static mode and applied on the next switch to dynamic",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.EffectRequest) (*models.CommandResponse, error) {
		e, err := keyboard.ParseEffect(input.Body.Effect)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return s.dispatch(session.SetEffect{Effect: e})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-speed",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/speed",
		Summary:     "Set Speed",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 502, 503},
	}, func(_ context.Context, input *models.SpeedRequest) (*models.CommandResponse, error) {
		return s.dispatch(session.SetSpeed{Speed: input.Body.Speed})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-direction",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/direction",
		Summary:     "Set Direction",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.DirectionRequest) (*models.CommandResponse, error) {
		d, err := keyboard.ParseDirection(input.Body.Direction)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return s.dispatch(session.SetDirection{Direction: d})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-dynamic-color",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/color",
		Summary:     "Set Effect Color",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.ColorRequest) (*models.CommandResponse, error) {
		c, err := keyboard.ParseRGB(input.Body.Color)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return s.dispatch(session.SetDynamicColor{Color: c})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-zone-color",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/zones/{zone}/color",
		Summary:     "Set Zone Color",
		Description: "Stored in dynamic mode and applied on the next switch to static",
		Tags:        []string{"zones"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.ZoneColorRequest) (*models.CommandResponse, error) {
		c, err := keyboard.ParseRGB(input.Body.Color)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return s.dispatch(session.SetZoneColor{Zone: input.Zone, Color: c})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-zone-enabled",
		Method:      http.MethodPut,
		Path:        "/api/keyboard/zones/{zone}/enabled",
		Summary:     "Enable or Disable Zone",
		Tags:        []string{"zones"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 422, 502, 503},
	}, func(_ context.Context, input *models.ZoneEnabledRequest) (*models.CommandResponse, error) {
		return s.dispatch(session.ToggleZone{Zone: input.Zone, Enabled: input.Body.Enabled})
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-presets",
		Method:      http.MethodGet,
		Path:        "/api/keyboard/presets",
		Summary:     "List Presets",
		Description: "Named colors, effects and directions accepted by the other endpoints",
		Tags:        []string{"keyboard"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.PresetsResponse, error) {
		colors := make(map[string]string, len(keyboard.Presets))
		for name, c := range keyboard.Presets {
			colors[name] = c.String()
		}
		var effects []string
		for _, e := range keyboard.Effects() {
			effects = append(effects, e.String())
		}
		return &models.PresetsResponse{Body: models.PresetsData{
			Colors:  colors,
			Effects: effects,
			Directions: []string{
				keyboard.DirectionNone.String(),
				keyboard.DirectionLeftToRight.String(),
				keyboard.DirectionRightToLeft.String(),
			},
		}}, nil
	})
}

func (s *Server) dispatch(cmd session.Command) (*models.CommandResponse, error) {
	return s.result(s.controller.Dispatch(cmd))
}

// result maps a session outcome to a response. Write failures are 502: the
// request was fine but the device rejected it.
func (s *Server) result(res session.Result, err error) (*models.CommandResponse, error) {
	if err != nil {
		var sessErr *session.Error
		switch {
		case session.IsInvalidCommand(err):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case device.IsWriteFailure(err):
			s.logger.Error("Device write failed", "command", res.Command, "error", err)
			return nil, huma.Error502BadGateway("Device write failed", err)
		case errors.As(err, &sessErr) && sessErr.Code == session.ErrCodeClosed:
			return nil, huma.Error503ServiceUnavailable("Keyboard session closed")
		default:
			return nil, huma.Error500InternalServerError("Command failed", err)
		}
	}

	data := models.CommandData{
		Command:   res.Command,
		Frames:    res.Frames,
		Persisted: res.Persisted,
		State:     toKeyboardData(res.State),
	}
	if res.PersistErr != nil {
		data.PersistError = res.PersistErr.Error()
	}
	return &models.CommandResponse{Body: data}, nil
}

func toKeyboardData(st keyboard.State) models.KeyboardData {
	zones := make([]models.ZoneData, 0, keyboard.ZoneCount)
	for i, z := range st.Zones {
		zones = append(zones, models.ZoneData{
			Zone:    i + 1,
			Color:   z.Color.String(),
			Enabled: z.Enabled,
		})
	}
	return models.KeyboardData{
		Mode:       st.Mode.String(),
		Brightness: int(st.Brightness),
		Dynamic: models.DynamicData{
			Effect:    st.Dynamic.Effect.String(),
			Speed:     int(st.Dynamic.Speed),
			Direction: st.Dynamic.Direction.String(),
			Color:     st.Dynamic.Color.String(),
		},
		Zones: zones,
	}
}

// fromKeyboardData builds a full state. Zones missing from data keep their
// defaults.
func fromKeyboardData(data models.KeyboardData) (keyboard.State, error) {
	st := keyboard.Default()

	m, err := keyboard.ParseMode(data.Mode)
	if err != nil {
		return st, err
	}
	st.SetMode(m)
	st.SetBrightness(data.Brightness)

	e, err := keyboard.ParseEffect(data.Dynamic.Effect)
	if err != nil {
		return st, err
	}
	st.SetEffect(e)
	st.SetSpeed(data.Dynamic.Speed)

	d, err := keyboard.ParseDirection(data.Dynamic.Direction)
	if err != nil {
		return st, err
	}
	st.SetDirection(d)

	c, err := keyboard.ParseRGB(data.Dynamic.Color)
	if err != nil {
		return st, err
	}
	st.SetDynamicColor(c)

	for _, z := range data.Zones {
		if !keyboard.ValidZone(z.Zone) {
			return st, fmt.Errorf("invalid zone %d", z.Zone)
		}
		zc, err := keyboard.ParseRGB(z.Color)
		if err != nil {
			return st, fmt.Errorf("zone %d: %w", z.Zone, err)
		}
		st.SetZoneColor(z.Zone, zc)
		st.SetZoneEnabled(z.Zone, z.Enabled)
	}
	return st, nil
}
