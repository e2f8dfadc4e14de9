package models

// Keyboard state models. Enumerations travel as names and colors as
// #rrggbb strings.

type DynamicData struct {
	Effect    string `json:"effect" example:"wave" doc:"Hardware effect"`
	Speed     int    `json:"speed" example:"5" doc:"Animation speed, 1-9"`
	Direction string `json:"direction" example:"left-to-right" doc:"Travel direction"`
	Color     string `json:"color" example:"#ff0000" doc:"Effect color"`
}

type ZoneData struct {
	Zone    int    `json:"zone" example:"1" doc:"Zone number, 1-3 from the left"`
	Color   string `json:"color" example:"#00ff00" doc:"Zone color"`
	Enabled bool   `json:"enabled" example:"true" doc:"Whether the zone is lit"`
}

type KeyboardData struct {
	Mode       string      `json:"mode" enum:"static,dynamic" example:"static" doc:"Lighting mode"`
	Brightness int         `json:"brightness" example:"100" doc:"Brightness, 0-100"`
	Dynamic    DynamicData `json:"dynamic" doc:"Parameters used in dynamic mode"`
	Zones      []ZoneData  `json:"zones" doc:"Zones used in static mode"`
}

type KeyboardResponse struct {
	Body KeyboardData
}

// KeyboardUpdateRequest replaces the whole state.
type KeyboardUpdateRequest struct {
	Body KeyboardData
}

type CommandData struct {
	Command      string       `json:"command" example:"set-brightness" doc:"Command that was executed"`
	Frames       int          `json:"frames" example:"1" doc:"Frames written to the hardware"`
	Persisted    bool         `json:"persisted" example:"true" doc:"Whether the new state was saved"`
	PersistError string       `json:"persist_error,omitempty" doc:"Why saving failed"`
	State        KeyboardData `json:"state" doc:"State after the command"`
}

type CommandResponse struct {
	Body CommandData
}

type ModeRequest struct {
	Body struct {
		Mode string `json:"mode" enum:"static,dynamic" example:"dynamic" doc:"Lighting mode"`
	}
}

type BrightnessRequest struct {
	Body struct {
		Brightness int `json:"brightness" example:"80" doc:"Brightness, clamped to 0-100"`
	}
}

type EffectRequest struct {
	Body struct {
		Effect string `json:"effect" example:"wave" doc:"Effect name or code (breathing, neon, wave, shifting, zoom, meteor, twinkling)"`
	}
}

type SpeedRequest struct {
	Body struct {
		Speed int `json:"speed" example:"5" doc:"Animation speed, clamped to 1-9"`
	}
}

type DirectionRequest struct {
	Body struct {
		Direction string `json:"direction" enum:"none,left-to-right,right-to-left" example:"right-to-left" doc:"Travel direction"`
	}
}

type ColorRequest struct {
	Body struct {
		Color string `json:"color" example:"#ff8800" doc:"Preset name, #rrggbb, rrggbb or r,g,b"`
	}
}

type ZoneColorRequest struct {
	Zone int `path:"zone" minimum:"1" maximum:"3" example:"2" doc:"Zone number"`
	Body struct {
		Color string `json:"color" example:"blue" doc:"Preset name, #rrggbb, rrggbb or r,g,b"`
	}
}

type ZoneEnabledRequest struct {
	Zone int `path:"zone" minimum:"1" maximum:"3" example:"2" doc:"Zone number"`
	Body struct {
		Enabled bool `json:"enabled" example:"false" doc:"Whether the zone is lit"`
	}
}

type PresetsData struct {
	Colors     map[string]string `json:"colors" doc:"Named colors"`
	Effects    []string          `json:"effects" doc:"Effect names in wire order"`
	Directions []string          `json:"directions" doc:"Direction names"`
}

type PresetsResponse struct {
	Body PresetsData
}
