package model

import "testing"

func TestStatusString(t *testing.T) {
	if StatusWouldBlock.String() != "errSSLWouldBlock" {
		t.Fatal("not working for known status")
	}
	if Status(-1).String() != "status(-1)" {
		t.Fatal("not working for unknown status")
	}
}

func TestStatusIsClosed(t *testing.T) {
	for _, s := range []Status{StatusClosedGraceful, StatusClosedAbort, StatusClosedNoNotify} {
		if !s.IsClosed() {
			t.Fatal("expected closed", s)
		}
	}
	for _, s := range []Status{StatusSuccess, StatusWouldBlock, StatusIO} {
		if s.IsClosed() {
			t.Fatal("expected not closed", s)
		}
	}
}

func TestTrustResultSuccess(t *testing.T) {
	expect := map[TrustResult]bool{
		TrustResultInvalid:                 false,
		TrustResultProceed:                 true,
		TrustResultDeny:                    false,
		TrustResultUnspecified:             true,
		TrustResultRecoverableTrustFailure: false,
		TrustResultFatalTrustFailure:       false,
		TrustResultOtherError:              false,
	}
	for result, success := range expect {
		if result.Success() != success {
			t.Fatal("unexpected Success() for", result)
		}
	}
}
