package securetransport

import (
	"crypto/tls"
	"errors"
	"io"
	"testing"

	"github.com/ooni/securetransport/internal/model"
)

func TestErrWrapper(t *testing.T) {
	t.Run("Error returns the failure", func(t *testing.T) {
		err := newErrWrapper(ReadOperation, model.StatusFatalAlert, nil)
		if err.Error() != FailureFatalAlert {
			t.Fatal("unexpected failure", err.Error())
		}
		var se *StatusError
		if !errors.As(err, &se) || se.Status != model.StatusFatalAlert {
			t.Fatal("expected a StatusError")
		}
		if se.Error() != "securetransport: engine status errSSLFatalAlert (-9802)" {
			t.Fatal("unexpected string", se.Error())
		}
	})

	t.Run("the cause is wrapped", func(t *testing.T) {
		err := newErrWrapper(WriteOperation, model.StatusClosedGraceful, io.EOF)
		if !errors.Is(err, io.EOF) {
			t.Fatal("expected to wrap io.EOF")
		}
	})

	t.Run("would block is recognized regardless of the cause", func(t *testing.T) {
		err := newErrWrapper(ReadOperation, model.StatusWouldBlock, errors.New("EAGAIN"))
		if !errors.Is(err, ErrWouldBlock) {
			t.Fatal("expected ErrWouldBlock")
		}
		err = newErrWrapper(ReadOperation, model.StatusIO, nil)
		if errors.Is(err, ErrWouldBlock) {
			t.Fatal("unexpected ErrWouldBlock")
		}
	})

	t.Run("unknown statuses", func(t *testing.T) {
		if failure := classifyStatus(model.Status(-1)); failure != "unknown_failure: status(-1)" {
			t.Fatal("unexpected failure", failure)
		}
	})
}

func TestInterruptReason(t *testing.T) {
	expect := map[InterruptReason]error{
		ServerAuthCompleted: ErrServerAuthCompleted,
		ClientCertRequested: ErrClientCertRequested,
		WouldBlock:          ErrWouldBlock,
	}
	for reason, sentinel := range expect {
		err := &HandshakeInterrupted{Reason: reason}
		if !errors.Is(err, sentinel) {
			t.Fatal("expected", sentinel, "for", reason)
		}
		if err.Error() != "securetransport: handshake interrupted: "+reason.String() {
			t.Fatal("unexpected string", err.Error())
		}
	}
}

func TestSetupError(t *testing.T) {
	err := &SetupError{Err: ErrContextConsumed}
	if !errors.Is(err, ErrContextConsumed) {
		t.Fatal("expected to wrap the cause")
	}
	if err.Error() != "securetransport: cannot setup the handshake: "+ErrContextConsumed.Error() {
		t.Fatal("unexpected string", err.Error())
	}
}

func TestEnums(t *testing.T) {
	if ClientSide.String() != "client" || ServerSide.String() != "server" {
		t.Fatal("unexpected side names")
	}
	if CipherSuite(tls.TLS_AES_128_GCM_SHA256).String() != "TLS_AES_128_GCM_SHA256" {
		t.Fatal("unexpected cipher name")
	}
	if ProtocolTLS13.String() != "tls13" || SessionConnected.String() != "connected" {
		t.Fatal("unexpected names")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	protocolFromCode(model.ProtocolCode(99))
}

func TestClientCertificateStateIsDistinctFromInterruptReason(t *testing.T) {
	states := map[model.ClientCertStateCode]ClientCertificateState{
		model.ClientCertNone:      ClientCertStateNone,
		model.ClientCertRequested: ClientCertStateRequested,
		model.ClientCertSent:      ClientCertStateSent,
		model.ClientCertRejected:  ClientCertStateRejected,
	}
	for code, expect := range states {
		if got := clientCertStateFromCode(code); got != expect {
			t.Fatal("expected", expect, "got", got)
		}
	}
	if ClientCertStateRequested.String() != "requested" {
		t.Fatal("unexpected name", ClientCertStateRequested.String())
	}
	if ClientCertRequested.String() != "client_cert_requested" {
		t.Fatal("unexpected name", ClientCertRequested.String())
	}
}
