package utils

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"ipb/config"
)

// IFSCBankDetails is the enrichment returned by the routing-code directory.
type IFSCBankDetails struct {
	BankName string `json:"bankName"`
	Branch   string `json:"branch"`
	Address  string `json:"address"`
}

// LookupIFSC resolves an already format-validated IFSC code against the
// Razorpay public directory. The call is best-effort with a short timeout;
// callers fall back to format-only validation when it fails.
var LookupIFSC = func(ifsc string) (*IFSCBankDetails, error) {
	var payload struct {
		Bank    string `json:"BANK"`
		Branch  string `json:"BRANCH"`
		Address string `json:"ADDRESS"`
	}

	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().
		SetResult(&payload).
		Get(config.AppConfig.IfscApiURL + ifsc)
	if err != nil {
		return nil, fmt.Errorf("ifsc lookup failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("ifsc lookup failed with status %d", resp.StatusCode())
	}

	return &IFSCBankDetails{
		BankName: payload.Bank,
		Branch:   payload.Branch,
		Address:  payload.Address,
	}, nil
}
