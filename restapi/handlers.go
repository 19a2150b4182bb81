package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/veluxklf/klf200d/protocol"
)

type actuatorView struct {
	NodeID          byte    `json:"node_id"`
	Name            string  `json:"name"`
	State           byte    `json:"state"`
	CurrentPosition float64 `json:"current_position"`
	TargetPosition  float64 `json:"target_position"`
}

func toActuatorView(n protocol.GetAllNodesInformationNtf) actuatorView {
	return actuatorView{
		NodeID:          n.NodeID,
		Name:            n.Name,
		State:           n.State,
		CurrentPosition: protocol.PositionToPercent(n.CurrentPosition),
		TargetPosition:  protocol.PositionToPercent(n.TargetPosition),
	}
}

// handleListActuators backs "GET /actuator/" and "GET /actuator/{id}/": it
// always enumerates every node via the streamed collector, then — if an id
// path value was given — filters down to that one node, answering 404 if it
// is not present.
func (s *Server) handleListActuators(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.gw.GetAllNodesInformation(r.Context())
	if err != nil {
		s.logger.Error("restapi: list actuators", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	idParam := r.PathValue("id")
	if idParam == "" {
		views := make([]actuatorView, 0, len(nodes))
		for _, n := range nodes {
			views = append(views, toActuatorView(n))
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	id, err := strconv.Atoi(idParam)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid node id")
		return
	}
	for _, n := range nodes {
		if int(n.NodeID) == id {
			writeJSON(w, http.StatusOK, toActuatorView(n))
			return
		}
	}
	writeError(w, http.StatusNotFound, "node not found")
}

type sendCommandRequest struct {
	MainParameter *float64 `json:"main_parameter"`
	Priority      *byte    `json:"priority"`
}

type sendCommandResponse struct {
	SessionID uint16                         `json:"session_id"`
	Progress  []protocol.CommandRunStatusNtf `json:"progress"`
}

// handleSendCommand backs "POST /actuator/{id}/": it issues a CommandSendReq
// targeting one node and returns once the session finishes.
func (s *Server) handleSendCommand(w http.ResponseWriter, r *http.Request) {
	idParam := r.PathValue("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id < 0 || id > 0xff {
		writeError(w, http.StatusNotFound, "invalid node id")
		return
	}

	var body sendCommandRequest
	if r.Body != nil {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusInternalServerError, "decode body")
			return
		}
	}

	mainParam := protocol.Percent(1).Encode() // default: fully closed
	if body.MainParameter != nil {
		mainParam = protocol.Percent(*body.MainParameter).Encode()
	}
	priority := protocol.PriorityUserLevel1
	if body.Priority != nil {
		priority = protocol.Priority(*body.Priority)
	}

	req := protocol.CommandSendReq{
		CommandOriginator: protocol.OriginatorUser,
		PriorityLevel:     priority,
		MainParameter:     mainParam,
		NodeIDs:           []byte{byte(id)},
	}

	progress, err := s.gw.SendCommand(r.Context(), req)
	if err != nil {
		s.logger.Error("restapi: send command", "node_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sendCommandResponse{SessionID: req.SessionID, Progress: progress})
}

type versionResponse struct {
	SoftwareVersion []byte `json:"software_version"`
	HardwareVersion byte   `json:"hardware_version"`
	ProductGroup    byte   `json:"product_group"`
	ProductType     byte   `json:"product_type"`
	MajorVersion    uint16 `json:"protocol_major_version"`
	MinorVersion    uint16 `json:"protocol_minor_version"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	ver, err := s.gw.GetVersion(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	proto, err := s.gw.GetProtocolVersion(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, versionResponse{
		SoftwareVersion: ver.SoftwareVersion[:],
		HardwareVersion: ver.HardwareVersion,
		ProductGroup:    ver.ProductGroup,
		ProductType:     ver.ProductType,
		MajorVersion:    proto.MajorVersion,
		MinorVersion:    proto.MinorVersion,
	})
}

type networkSetupResponse struct {
	IPAddress string `json:"ip_address"`
	Mask      string `json:"mask"`
	DefaultGW string `json:"default_gateway"`
	DHCP      bool   `json:"dhcp"`
}

func (s *Server) handleNetworkSetup(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.gw.GetNetworkSetup(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, networkSetupResponse{
		IPAddress: cfg.IPAddress.String(),
		Mask:      cfg.Mask.String(),
		DefaultGW: cfg.DefaultGW.String(),
		DHCP:      cfg.DHCP,
	})
}

type clockResponse struct {
	UTCTime        uint32 `json:"utc_time"`
	YearOffset     int8   `json:"year_offset"`
	DaylightSaving bool   `json:"daylight_saving"`
}

func (s *Server) handleGetClock(w http.ResponseWriter, r *http.Request) {
	t, err := s.gw.GetLocalTime(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, clockResponse{
		UTCTime:        t.UTCTime,
		YearOffset:     t.YearOffset,
		DaylightSaving: t.DaylightSaving,
	})
}

type setClockRequest struct {
	UnixTime uint32  `json:"unix_time"`
	TimeZone *string `json:"time_zone"`
}

func (s *Server) handleSetClock(w http.ResponseWriter, r *http.Request) {
	var body setClockRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusInternalServerError, "decode body")
		return
	}

	if err := s.gw.SetUTC(r.Context(), body.UnixTime); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if body.TimeZone != nil {
		if _, err := s.gw.SetTimeZone(r.Context(), *body.TimeZone); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type controllerCopyRequest struct {
	CopyMode string `json:"copy_mode"`
}

// handleControllerCopy backs "POST /config/controller_copy/": copy_mode
// selects between "rcm" (receive configuration from another controller) and
// "tcm" (transmit this controller's configuration to another).
func (s *Server) handleControllerCopy(w http.ResponseWriter, r *http.Request) {
	var body controllerCopyRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusInternalServerError, "decode body")
		return
	}

	var mode protocol.ControllerCopyMode
	switch body.CopyMode {
	case "rcm":
		mode = protocol.CopyModeRCM
	case "tcm":
		mode = protocol.CopyModeTCM
	default:
		writeError(w, http.StatusInternalServerError, "copy_mode must be \"rcm\" or \"tcm\"")
		return
	}

	if _, err := s.gw.Send(r.Context(), protocol.CsControllerCopyReq{CopyMode: mode}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
