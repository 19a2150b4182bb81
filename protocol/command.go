package protocol

// CommandID is the 16-bit opaque command identifier carried by every frame.
type CommandID uint16

// The command catalogue. Requests end in Req, immediate acknowledgements in
// Cfm, asynchronous notifications in Ntf. Values are fixed by the gateway's
// wire protocol.
const (
	GwErrorNtf CommandID = 0x0000

	GwRebootReq CommandID = 0x0001
	GwRebootCfm CommandID = 0x0002

	GwGetStateReq CommandID = 0x000C
	GwGetStateCfm CommandID = 0x000D

	GwLeaveLearnStateReq CommandID = 0x000E
	GwLeaveLearnStateCfm CommandID = 0x000F

	GwGetNetworkSetupReq CommandID = 0x00E0
	GwGetNetworkSetupCfm CommandID = 0x00E1

	GwGetVersionReq CommandID = 0x0008
	GwGetVersionCfm CommandID = 0x0009

	GwGetProtocolVersionReq CommandID = 0x000A
	GwGetProtocolVersionCfm CommandID = 0x000B

	GwSetUTCReq CommandID = 0x2000
	GwSetUTCCfm CommandID = 0x2001

	GwRtcSetTimeZoneReq CommandID = 0x2002
	GwRtcSetTimeZoneCfm CommandID = 0x2003

	GwGetLocalTimeReq CommandID = 0x2004
	GwGetLocalTimeCfm CommandID = 0x2005

	GwGetAllNodesInformationReq         CommandID = 0x0202
	GwGetAllNodesInformationCfm         CommandID = 0x0203
	GwGetAllNodesInformationNtf         CommandID = 0x0204
	GwGetAllNodesInformationFinishedNtf CommandID = 0x0205

	GwNodeStatePositionChangedNtf CommandID = 0x0211

	GwCommandSendReq       CommandID = 0x0300
	GwCommandSendCfm       CommandID = 0x0301
	GwCommandRunStatusNtf  CommandID = 0x0302
	GwCommandRemainingTime CommandID = 0x0303
	GwSessionFinishedNtf   CommandID = 0x0304

	GwHouseStatusMonitorEnableReq  CommandID = 0x0240
	GwHouseStatusMonitorEnableCfm  CommandID = 0x0241
	GwHouseStatusMonitorDisableReq CommandID = 0x0242
	GwHouseStatusMonitorDisableCfm CommandID = 0x0243

	GwPasswordEnterReq CommandID = 0x3000
	GwPasswordEnterCfm CommandID = 0x3001

	GwPasswordChangeReq CommandID = 0x3002
	GwPasswordChangeCfm CommandID = 0x3003
	GwPasswordChangeNtf CommandID = 0x3004

	GwCSControllerCopyReq       CommandID = 0x0405
	GwCSControllerCopyCfm       CommandID = 0x0406
	GwCSControllerCopyNtf       CommandID = 0x0407
	GwCSControllerCopyCancelNtf CommandID = 0x0408
)

// String renders a command id using its symbolic name where known, and
// "GW_UNKNOWN" otherwise — used by logging and the flood-detector keys.
func (c CommandID) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "GW_UNKNOWN"
}

var commandNames = map[CommandID]string{
	GwErrorNtf:                           "GW_ERROR_NTF",
	GwRebootReq:                          "GW_REBOOT_REQ",
	GwRebootCfm:                          "GW_REBOOT_CFM",
	GwGetStateReq:                        "GW_GET_STATE_REQ",
	GwGetStateCfm:                        "GW_GET_STATE_CFM",
	GwLeaveLearnStateReq:                 "GW_LEAVE_LEARN_STATE_REQ",
	GwLeaveLearnStateCfm:                 "GW_LEAVE_LEARN_STATE_CFM",
	GwGetNetworkSetupReq:                 "GW_GET_NETWORK_SETUP_REQ",
	GwGetNetworkSetupCfm:                 "GW_GET_NETWORK_SETUP_CFM",
	GwGetVersionReq:                      "GW_GET_VERSION_REQ",
	GwGetVersionCfm:                      "GW_GET_VERSION_CFM",
	GwGetProtocolVersionReq:              "GW_GET_PROTOCOL_VERSION_REQ",
	GwGetProtocolVersionCfm:              "GW_GET_PROTOCOL_VERSION_CFM",
	GwSetUTCReq:                          "GW_SET_UTC_REQ",
	GwSetUTCCfm:                          "GW_SET_UTC_CFM",
	GwRtcSetTimeZoneReq:                  "GW_RTC_SET_TIME_ZONE_REQ",
	GwRtcSetTimeZoneCfm:                  "GW_RTC_SET_TIME_ZONE_CFM",
	GwGetLocalTimeReq:                    "GW_GET_LOCAL_TIME_REQ",
	GwGetLocalTimeCfm:                    "GW_GET_LOCAL_TIME_CFM",
	GwGetAllNodesInformationReq:          "GW_GET_ALL_NODES_INFORMATION_REQ",
	GwGetAllNodesInformationCfm:          "GW_GET_ALL_NODES_INFORMATION_CFM",
	GwGetAllNodesInformationNtf:          "GW_GET_ALL_NODES_INFORMATION_NTF",
	GwGetAllNodesInformationFinishedNtf:  "GW_GET_ALL_NODES_INFORMATION_FINISHED_NTF",
	GwNodeStatePositionChangedNtf:        "GW_NODE_STATE_POSITION_CHANGED_NTF",
	GwCommandSendReq:                     "GW_COMMAND_SEND_REQ",
	GwCommandSendCfm:                     "GW_COMMAND_SEND_CFM",
	GwCommandRunStatusNtf:                "GW_COMMAND_RUN_STATUS_NTF",
	GwCommandRemainingTime:               "GW_COMMAND_REMAINING_TIME_NTF",
	GwSessionFinishedNtf:                 "GW_SESSION_FINISHED_NTF",
	GwHouseStatusMonitorEnableReq:        "GW_HOUSE_STATUS_MONITOR_ENABLE_REQ",
	GwHouseStatusMonitorEnableCfm:        "GW_HOUSE_STATUS_MONITOR_ENABLE_CFM",
	GwHouseStatusMonitorDisableReq:       "GW_HOUSE_STATUS_MONITOR_DISABLE_REQ",
	GwHouseStatusMonitorDisableCfm:       "GW_HOUSE_STATUS_MONITOR_DISABLE_CFM",
	GwPasswordEnterReq:                   "GW_PASSWORD_ENTER_REQ",
	GwPasswordEnterCfm:                   "GW_PASSWORD_ENTER_CFM",
	GwPasswordChangeReq:                  "GW_PASSWORD_CHANGE_REQ",
	GwPasswordChangeCfm:                  "GW_PASSWORD_CHANGE_CFM",
	GwPasswordChangeNtf:                  "GW_PASSWORD_CHANGE_NTF",
	GwCSControllerCopyReq:                "GW_CS_CONTROLLER_COPY_REQ",
	GwCSControllerCopyCfm:                "GW_CS_CONTROLLER_COPY_CFM",
	GwCSControllerCopyNtf:                "GW_CS_CONTROLLER_COPY_NTF",
	GwCSControllerCopyCancelNtf:          "GW_CS_CONTROLLER_COPY_CANCEL_NTF",
}
