package handler_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/context"
	"github.com/teebridge/teelc/modules/core/registry"
	"github.com/teebridge/teelc/modules/core/store"
	"github.com/teebridge/teelc/modules/enclave"
	"github.com/teebridge/teelc/modules/handler"
	"github.com/teebridge/teelc/modules/light-clients/mock"
	"github.com/teebridge/teelc/modules/types"
)

type HandlerTestSuite struct {
	suite.Suite

	ctx *context.Context
	reg *registry.Registry
	key *enclave.Key
	now types.Time
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	key, err := enclave.GenerateKey()
	suite.Require().NoError(err)
	suite.key = key

	now, err := types.FromUnixTimestampNanos(1_700_000_000_000_000_000)
	suite.Require().NoError(err)
	suite.now = now

	suite.ctx = context.NewContext(store.NewMemStore(), key).
		WithHostTimestamp(func() types.Time { return now })
	suite.reg = registry.NewRegistry().
		AddRoute(mock.ClientStateTypeURL, mock.NewLightClient())
}

func (suite *HandlerTestSuite) createClient() string {
	res, err := handler.CreateClient(suite.ctx, suite.reg, handler.CreateClientInput{
		AnyClientState:    mock.NewClientState(types.NewHeight(1, 1)),
		AnyConsensusState: mock.NewConsensusState(suite.now),
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(res.Proof)
	return res.ClientID
}

func (suite *HandlerTestSuite) TestCreateClient() {
	clientID := suite.createClient()
	suite.Require().Equal("mock-client-0", clientID)

	res2, err := handler.CreateClient(suite.ctx, suite.reg, handler.CreateClientInput{
		AnyClientState:    mock.NewClientState(types.NewHeight(1, 1)),
		AnyConsensusState: mock.NewConsensusState(suite.now),
	})
	suite.Require().NoError(err)
	suite.Require().Equal("mock-client-1", res2.ClientID)
}

func (suite *HandlerTestSuite) TestCreateClientProof() {
	res, err := handler.CreateClient(suite.ctx, suite.reg, handler.CreateClientInput{
		AnyClientState:    mock.NewClientState(types.NewHeight(1, 1)),
		AnyConsensusState: mock.NewConsensusState(suite.now),
	})
	suite.Require().NoError(err)

	suite.Require().Equal(suite.key.Address(), res.Proof.Signer)
	signer, err := enclave.RecoverSigner(res.Proof.CommitmentBytes, res.Proof.Signature)
	suite.Require().NoError(err)
	suite.Require().Equal(suite.key.Address(), signer)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	uc, ok := c.(*commitments.UpdateClientCommitment)
	suite.Require().True(ok)
	suite.Require().Nil(uc.PrevStateID)
	suite.Require().Nil(uc.PrevHeight)
	suite.Require().Equal(types.NewHeight(1, 1), uc.NewHeight)
	suite.Require().Equal(commitments.EmptyContext{}, uc.Context)
}

func (suite *HandlerTestSuite) TestCreateClientUnregisteredTypeURL() {
	_, err := handler.CreateClient(suite.ctx, suite.reg, handler.CreateClientInput{
		AnyClientState:    types.NewAny("/example.UnknownClientState", []byte{0x01}),
		AnyConsensusState: mock.NewConsensusState(suite.now),
	})
	suite.Require().ErrorIs(err, handler.ErrLightClientNotRegistered)
}

func (suite *HandlerTestSuite) TestUpdateClient() {
	clientID := suite.createClient()

	newTime, err := suite.now.Add(time.Minute)
	suite.Require().NoError(err)

	res, err := handler.UpdateClient(suite.ctx, suite.reg, handler.UpdateClientInput{
		ClientID:  clientID,
		AnyHeader: mock.NewHeader(types.NewHeight(1, 2), newTime),
	})
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewHeight(1, 2), res.Height)
	suite.Require().NotNil(res.Proof)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	uc, ok := c.(*commitments.UpdateClientCommitment)
	suite.Require().True(ok)
	suite.Require().NotNil(uc.PrevStateID)
	suite.Require().NotNil(uc.PrevHeight)
	suite.Require().Equal(types.NewHeight(1, 1), *uc.PrevHeight)
	suite.Require().Equal(types.NewHeight(1, 2), uc.NewHeight)
	suite.Require().Equal(newTime, uc.Timestamp)

	// The persisted states must hash to the committed new state ID.
	anyClientState, err := suite.ctx.ClientState(clientID)
	suite.Require().NoError(err)
	anyConsensusState, err := suite.ctx.ConsensusState(clientID, res.Height)
	suite.Require().NoError(err)
	stateID, err := commitments.GenStateIDFromAny(anyClientState, anyConsensusState)
	suite.Require().NoError(err)
	suite.Require().Equal(stateID, uc.NewStateID)
}

func (suite *HandlerTestSuite) TestUpdateClientUnknownClientID() {
	_, err := handler.UpdateClient(suite.ctx, suite.reg, handler.UpdateClientInput{
		ClientID:  "mock-client-42",
		AnyHeader: mock.NewHeader(types.NewHeight(1, 2), suite.now),
	})
	suite.Require().ErrorIs(err, context.ErrClientTypeNotFound)
}

func (suite *HandlerTestSuite) TestVerifyClient() {
	clientID := suite.createClient()

	res, err := handler.VerifyClient(suite.ctx, suite.reg, handler.VerifyClientInput{
		ClientID:             clientID,
		TargetAnyClientState: mock.NewClientState(types.NewHeight(2, 7)),
		Prefix:               []byte("ibc"),
		CounterpartyClientID: "counterparty-0",
		ProofHeight:          types.NewHeight(1, 1),
		Proof:                []byte("proof"),
	})
	suite.Require().NoError(err)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	sc, ok := c.(*commitments.StateCommitment)
	suite.Require().True(ok)
	suite.Require().Equal("clients/counterparty-0/clientState", sc.Path)
	suite.Require().Equal(types.NewHeight(1, 1), sc.Height)
	suite.Require().NotNil(sc.Value)
}

func (suite *HandlerTestSuite) TestVerifyClientConsensus() {
	clientID := suite.createClient()

	res, err := handler.VerifyClientConsensus(suite.ctx, suite.reg, handler.VerifyClientConsensusInput{
		ClientID:                    clientID,
		TargetAnyConsensusState:     mock.NewConsensusState(suite.now),
		Prefix:                      []byte("ibc"),
		CounterpartyClientID:        "counterparty-0",
		CounterpartyConsensusHeight: types.NewHeight(2, 7),
		ProofHeight:                 types.NewHeight(1, 1),
		Proof:                       []byte("proof"),
	})
	suite.Require().NoError(err)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	sc, ok := c.(*commitments.StateCommitment)
	suite.Require().True(ok)
	suite.Require().Equal("clients/counterparty-0/consensusStates/2-7", sc.Path)
	suite.Require().NotNil(sc.Value)
}

func (suite *HandlerTestSuite) TestVerifyConnection() {
	clientID := suite.createClient()

	expected := []byte("connection-end")
	res, err := handler.VerifyConnection(suite.ctx, suite.reg, handler.VerifyConnectionInput{
		ClientID:                 clientID,
		ExpectedConnectionBytes:  expected,
		Prefix:                   []byte("ibc"),
		CounterpartyConnectionID: "connection-3",
		ProofHeight:              types.NewHeight(1, 1),
		Proof:                    []byte("proof"),
	})
	suite.Require().NoError(err)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	sc, ok := c.(*commitments.StateCommitment)
	suite.Require().True(ok)
	suite.Require().Equal("connections/connection-3", sc.Path)
	suite.Require().NotNil(sc.Value)
	suite.Require().Equal([32]byte(crypto.Keccak256Hash(expected)), *sc.Value)
}

func (suite *HandlerTestSuite) TestVerifyChannel() {
	clientID := suite.createClient()

	res, err := handler.VerifyChannel(suite.ctx, suite.reg, handler.VerifyChannelInput{
		ClientID:              clientID,
		ExpectedChannelBytes:  []byte("channel-end"),
		Prefix:                []byte("ibc"),
		CounterpartyPortID:    "transfer",
		CounterpartyChannelID: "channel-5",
		ProofHeight:           types.NewHeight(1, 1),
		Proof:                 []byte("proof"),
	})
	suite.Require().NoError(err)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	sc, ok := c.(*commitments.StateCommitment)
	suite.Require().True(ok)
	suite.Require().Equal("channelEnds/ports/transfer/channels/channel-5", sc.Path)
}

func (suite *HandlerTestSuite) TestVerifyMembership() {
	clientID := suite.createClient()

	value := []byte("packet-commitment")
	res, err := handler.VerifyMembership(suite.ctx, suite.reg, handler.VerifyMembershipInput{
		ClientID:    clientID,
		Prefix:      []byte("ibc"),
		Path:        "commitments/ports/transfer/channels/channel-0/sequences/1",
		Value:       value,
		ProofHeight: types.NewHeight(1, 1),
		Proof:       []byte("proof"),
	})
	suite.Require().NoError(err)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	sc, ok := c.(*commitments.StateCommitment)
	suite.Require().True(ok)
	suite.Require().NotNil(sc.Value)
	suite.Require().Equal([32]byte(crypto.Keccak256Hash(value)), *sc.Value)
}

func (suite *HandlerTestSuite) TestVerifyNonMembership() {
	clientID := suite.createClient()

	res, err := handler.VerifyNonMembership(suite.ctx, suite.reg, handler.VerifyNonMembershipInput{
		ClientID:    clientID,
		Prefix:      []byte("ibc"),
		Path:        "receipts/ports/transfer/channels/channel-0/sequences/9",
		ProofHeight: types.NewHeight(1, 1),
		Proof:       []byte("proof"),
	})
	suite.Require().NoError(err)

	c, err := res.Proof.Commitment()
	suite.Require().NoError(err)
	sc, ok := c.(*commitments.StateCommitment)
	suite.Require().True(ok)
	suite.Require().Nil(sc.Value)
}

func TestGetLightClientUnregisteredClientType(t *testing.T) {
	key, err := enclave.GenerateKey()
	require.NoError(t, err)

	ctx := context.NewContext(store.NewMemStore(), key)
	ctx.SetClientType("orphan-0", "orphan-client")

	_, err = handler.UpdateClient(ctx, registry.NewRegistry(), handler.UpdateClientInput{
		ClientID:  "orphan-0",
		AnyHeader: types.NewAny("/example.Header", nil),
	})
	require.ErrorIs(t, err, handler.ErrLightClientNotFound)
}
