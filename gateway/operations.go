package gateway

import (
	"context"
	"fmt"

	"github.com/veluxklf/klf200d/collect"
	"github.com/veluxklf/klf200d/protocol"
)

// collectorAdapter narrows Client down to collect.Subscriber's untyped
// signature without collect needing to import protocol.
type collectorAdapter struct{ c *Client }

func (a collectorAdapter) Subscribe(commandID uint16) <-chan any { return a.c.Subscribe(commandID) }
func (a collectorAdapter) Cancel(commandID uint16, ch <-chan any) { a.c.Cancel(commandID, ch) }

func (a collectorAdapter) Send(ctx context.Context, req collect.Request) (any, error) {
	r, ok := req.(collectRequest)
	if !ok {
		return nil, fmt.Errorf("gateway: %T is not a wrapped protocol.Request", req)
	}
	return a.c.Send(ctx, r.Request)
}

// collectRequest wraps a protocol.Request so it satisfies collect.Request,
// whose CommandID returns a plain uint16.
type collectRequest struct{ protocol.Request }

func (r collectRequest) CommandID() uint16 { return uint16(r.Request.CommandID()) }

// GetVersion requests the gateway's firmware version.
func (c *Client) GetVersion(ctx context.Context) (protocol.GetVersionCfm, error) {
	msg, err := c.Send(ctx, protocol.GetVersionReq{})
	if err != nil {
		return protocol.GetVersionCfm{}, err
	}
	cfm, ok := msg.(protocol.GetVersionCfm)
	if !ok {
		return protocol.GetVersionCfm{}, fmt.Errorf("gateway: unexpected confirmation type %T", msg)
	}
	return cfm, nil
}

// GetProtocolVersion requests the gateway's protocol version.
func (c *Client) GetProtocolVersion(ctx context.Context) (protocol.GetProtocolVersionCfm, error) {
	msg, err := c.Send(ctx, protocol.GetProtocolVersionReq{})
	if err != nil {
		return protocol.GetProtocolVersionCfm{}, err
	}
	cfm, ok := msg.(protocol.GetProtocolVersionCfm)
	if !ok {
		return protocol.GetProtocolVersionCfm{}, fmt.Errorf("gateway: unexpected confirmation type %T", msg)
	}
	return cfm, nil
}

// GetNetworkSetup requests the gateway's IPv4 network configuration.
func (c *Client) GetNetworkSetup(ctx context.Context) (protocol.GetNetworkSetupCfm, error) {
	msg, err := c.Send(ctx, protocol.GetNetworkSetupReq{})
	if err != nil {
		return protocol.GetNetworkSetupCfm{}, err
	}
	cfm, ok := msg.(protocol.GetNetworkSetupCfm)
	if !ok {
		return protocol.GetNetworkSetupCfm{}, fmt.Errorf("gateway: unexpected confirmation type %T", msg)
	}
	return cfm, nil
}

// GetLocalTime requests the gateway's local time.
func (c *Client) GetLocalTime(ctx context.Context) (protocol.GetLocalTimeCfm, error) {
	msg, err := c.Send(ctx, protocol.GetLocalTimeReq{})
	if err != nil {
		return protocol.GetLocalTimeCfm{}, err
	}
	cfm, ok := msg.(protocol.GetLocalTimeCfm)
	if !ok {
		return protocol.GetLocalTimeCfm{}, fmt.Errorf("gateway: unexpected confirmation type %T", msg)
	}
	return cfm, nil
}

// SetUTC sets the gateway's clock to a UTC Unix timestamp.
func (c *Client) SetUTC(ctx context.Context, unixTime uint32) error {
	_, err := c.Send(ctx, protocol.SetUTCReq{UnixTime: unixTime})
	return err
}

// SetTimeZone sets the gateway's timezone from a POSIX TZ string.
func (c *Client) SetTimeZone(ctx context.Context, tz string) (bool, error) {
	msg, err := c.Send(ctx, protocol.RtcSetTimeZoneReq{TimeZone: tz})
	if err != nil {
		return false, err
	}
	cfm, ok := msg.(protocol.RtcSetTimeZoneCfm)
	if !ok {
		return false, fmt.Errorf("gateway: unexpected confirmation type %T", msg)
	}
	return cfm.IsSuccess, nil
}

// EnableHouseStatusMonitor asks the gateway to start emitting
// NodeStatePositionChangedNtf for every actuator move, not just ones this
// client initiated.
func (c *Client) EnableHouseStatusMonitor(ctx context.Context) error {
	_, err := c.Send(ctx, protocol.HouseStatusMonitorEnableReq{})
	return err
}

// DisableHouseStatusMonitor stops ambient position-change notifications.
func (c *Client) DisableHouseStatusMonitor(ctx context.Context) error {
	_, err := c.Send(ctx, protocol.HouseStatusMonitorDisableReq{})
	return err
}

// GetAllNodesInformation enumerates every node known to the gateway: one
// Cfm acknowledging the request, then a stream of per-node Ntf frames
// terminated by a FinishedNtf, harvested via collect.Collect.
func (c *Client) GetAllNodesInformation(ctx context.Context) ([]protocol.GetAllNodesInformationNtf, error) {
	return collect.Collect[protocol.GetAllNodesInformationNtf](
		ctx,
		collectorAdapter{c},
		collectRequest{protocol.GetAllNodesInformationReq{}},
		uint16(protocol.GwGetAllNodesInformationNtf),
		uint16(protocol.GwGetAllNodesInformationFinishedNtf),
		nil,
	)
}

// SendCommand issues a CommandSendReq and harvests the CommandRunStatusNtf
// stream for that session until SessionFinishedNtf arrives, discarding
// progress notifications that belong to other, concurrently running
// sessions.
func (c *Client) SendCommand(ctx context.Context, req protocol.CommandSendReq) ([]protocol.CommandRunStatusNtf, error) {
	sessionID, err := c.sessions.Allocate()
	if err != nil {
		return nil, fmt.Errorf("gateway: allocate session: %w", err)
	}
	req.SessionID = sessionID

	match := func(v any) bool {
		switch n := v.(type) {
		case protocol.CommandRunStatusNtf:
			return n.SessionID == sessionID
		case protocol.SessionFinishedNtf:
			return n.SessionID == sessionID
		default:
			return false
		}
	}

	items, err := collect.Collect[protocol.CommandRunStatusNtf](
		ctx,
		collectorAdapter{c},
		collectRequest{req},
		uint16(protocol.GwCommandRunStatusNtf),
		uint16(protocol.GwSessionFinishedNtf),
		match,
	)
	if err != nil {
		c.sessions.Release(sessionID)
	}
	return items, err
}
