package diag

import "fmt"

// UDS Service ID (SID) constants, ISO 14229.
const (
	ServiceDiagnosticSessionControl       byte = 0x10
	ServiceECUReset                       byte = 0x11
	ServiceClearDiagnosticInformation     byte = 0x14
	ServiceReadDTCInformation             byte = 0x19
	ServiceReadDataByIdentifier           byte = 0x22
	ServiceReadMemoryByAddress            byte = 0x23
	ServiceReadScalingDataByIdentifier    byte = 0x24
	ServiceSecurityAccess                 byte = 0x27
	ServiceCommunicationControl           byte = 0x28
	ServiceReadDataByPeriodicIdentifier   byte = 0x2A
	ServiceWriteDataByIdentifier          byte = 0x2E
	ServiceInputOutputControlByIdentifier byte = 0x2F
	ServiceRoutineControl                 byte = 0x31
	ServiceRequestDownload                byte = 0x34
	ServiceRequestUpload                  byte = 0x35
	ServiceTransferData                   byte = 0x36
	ServiceRequestTransferExit            byte = 0x37
	ServiceTesterPresent                  byte = 0x3E
	ServiceControlDTCSetting              byte = 0x85
)

var serviceIDNames = map[byte]string{
	ServiceDiagnosticSessionControl:       "Diagnostic Session Control",
	ServiceECUReset:                       "ECU Reset",
	ServiceClearDiagnosticInformation:     "Clear Diagnostic Information",
	ServiceReadDTCInformation:             "Read DTC Information",
	ServiceReadDataByIdentifier:           "Read Data By Identifier",
	ServiceReadMemoryByAddress:            "Read Memory By Address",
	ServiceReadScalingDataByIdentifier:    "Read Scaling Data By Identifier",
	ServiceSecurityAccess:                 "Security Access",
	ServiceCommunicationControl:           "Communication Control",
	ServiceReadDataByPeriodicIdentifier:   "Read Data By Periodic Identifier",
	ServiceWriteDataByIdentifier:          "Write Data By Identifier",
	ServiceInputOutputControlByIdentifier: "Input Output Control By Identifier",
	ServiceRoutineControl:                 "Routine Control",
	ServiceRequestDownload:                "Request Download",
	ServiceRequestUpload:                  "Request Upload",
	ServiceTransferData:                   "Transfer Data",
	ServiceRequestTransferExit:            "Request Transfer Exit",
	ServiceTesterPresent:                  "Tester Present",
	ServiceControlDTCSetting:              "Control DTC Setting",
}

// ServiceName returns the human-readable name of a SID, or its hex value
// if unrecognized.
func ServiceName(sid byte) string {
	if name, ok := serviceIDNames[sid]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", sid)
}

// IsKnownSID reports whether sid appears in the service table.
func IsKnownSID(sid byte) bool {
	_, ok := serviceIDNames[sid]
	return ok
}
