package tee_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/teebridge/teelc/modules/commitments"
	"github.com/teebridge/teelc/modules/core/context"
	"github.com/teebridge/teelc/modules/core/store"
	"github.com/teebridge/teelc/modules/enclave"
	"github.com/teebridge/teelc/modules/light-clients/tee"
	"github.com/teebridge/teelc/modules/types"
)

const testClientID = "tee-client-0"

type TEEClientTestSuite struct {
	suite.Suite

	ctx        *context.Context
	lc         *tee.LightClient
	enclaveKey *enclave.Key
	now        types.Time
}

func TestTEEClientTestSuite(t *testing.T) {
	suite.Run(t, new(TEEClientTestSuite))
}

func (suite *TEEClientTestSuite) SetupTest() {
	key, err := enclave.GenerateKey()
	suite.Require().NoError(err)
	suite.enclaveKey = key

	now, err := types.FromUnixTimestampNanos(1_700_000_000_000_000_000)
	suite.Require().NoError(err)
	suite.now = now

	suite.ctx = context.NewContext(store.NewMemStore(), key).
		WithHostTimestamp(func() types.Time { return now })
	suite.lc = tee.NewLightClient()
}

func (suite *TEEClientTestSuite) clientState(height types.Height, keys ...common.Address) *tee.ClientState {
	if len(keys) == 0 {
		keys = []common.Address{suite.enclaveKey.Address()}
	}
	return tee.NewClientState(height, make([]byte, tee.MrEnclaveSize), 30*24*time.Hour, keys)
}

// setupClient stores an initial client/consensus state pair and returns the
// consensus state's ID.
func (suite *TEEClientTestSuite) setupClient(height types.Height) commitments.StateID {
	anyClientState, err := tee.PackClientState(suite.clientState(height))
	suite.Require().NoError(err)

	stateID := commitments.StateID{0x01, 0x02, 0x03}
	anyConsensusState, err := tee.PackConsensusState(tee.NewConsensusState(stateID, suite.now))
	suite.Require().NoError(err)

	suite.ctx.SetClientType(testClientID, tee.ClientType)
	suite.Require().NoError(suite.ctx.SetClientState(testClientID, anyClientState))
	suite.Require().NoError(suite.ctx.SetConsensusState(testClientID, height, anyConsensusState))
	return stateID
}

// signedHeader signs the commitment with the given key and wraps it as an
// Any-encoded header.
func (suite *TEEClientTestSuite) signedHeader(key *enclave.Key, commitment *commitments.UpdateClientCommitment) types.Any {
	proof, err := commitments.ProveCommitment(key, commitment)
	suite.Require().NoError(err)
	anyHeader, err := tee.PackHeader(tee.NewHeader(proof.CommitmentBytes, proof.Signature))
	suite.Require().NoError(err)
	return anyHeader
}

// updateCommitment builds a well-formed update commitment from the stored
// state at prevHeight to newHeight.
func (suite *TEEClientTestSuite) updateCommitment(prevStateID commitments.StateID, prevHeight, newHeight types.Height) *commitments.UpdateClientCommitment {
	headerTime, err := suite.now.Add(time.Minute)
	suite.Require().NoError(err)
	return &commitments.UpdateClientCommitment{
		PrevStateID: &prevStateID,
		NewStateID:  commitments.StateID{0xaa, 0xbb},
		PrevHeight:  &prevHeight,
		NewHeight:   newHeight,
		Timestamp:   headerTime,
		Context: commitments.NewTrustingPeriodContext(
			time.Hour, 5*time.Minute,
			headerTime, suite.now,
		),
	}
}

func (suite *TEEClientTestSuite) TestCreateClient() {
	anyClientState, err := tee.PackClientState(suite.clientState(types.NewHeight(1, 1)))
	suite.Require().NoError(err)
	anyConsensusState, err := tee.PackConsensusState(tee.NewConsensusState(commitments.StateID{0x01}, suite.now))
	suite.Require().NoError(err)

	res, err := suite.lc.CreateClient(suite.ctx, anyClientState, anyConsensusState)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewHeight(1, 1), res.Height)
	suite.Require().True(res.Prove)
	suite.Require().Nil(res.Commitment.PrevStateID)
	suite.Require().Nil(res.Commitment.PrevHeight)
	suite.Require().Equal(commitments.EmptyContext{}, res.Commitment.Context)

	expStateID, err := commitments.GenStateIDFromAny(anyClientState, anyConsensusState)
	suite.Require().NoError(err)
	suite.Require().Equal(expStateID, res.Commitment.NewStateID)
}

func (suite *TEEClientTestSuite) TestCreateClientInvalidStates() {
	validConsensus, err := tee.PackConsensusState(tee.NewConsensusState(commitments.StateID{0x01}, suite.now))
	suite.Require().NoError(err)

	// short mr_enclave
	badClientState, err := tee.PackClientState(tee.NewClientState(
		types.NewHeight(1, 1), make([]byte, 16), time.Hour,
		[]common.Address{suite.enclaveKey.Address()},
	))
	suite.Require().NoError(err)
	_, err = suite.lc.CreateClient(suite.ctx, badClientState, validConsensus)
	suite.Require().ErrorIs(err, tee.ErrInvalidClientState)

	// no enclave keys
	keylessClientState, err := tee.PackClientState(tee.NewClientState(
		types.NewHeight(1, 1), make([]byte, tee.MrEnclaveSize), time.Hour, nil,
	))
	suite.Require().NoError(err)
	_, err = suite.lc.CreateClient(suite.ctx, keylessClientState, validConsensus)
	suite.Require().ErrorIs(err, tee.ErrInvalidClientState)

	// zero state ID
	validClientState, err := tee.PackClientState(suite.clientState(types.NewHeight(1, 1)))
	suite.Require().NoError(err)
	zeroConsensus, err := tee.PackConsensusState(tee.NewConsensusState(commitments.StateID{}, suite.now))
	suite.Require().NoError(err)
	_, err = suite.lc.CreateClient(suite.ctx, validClientState, zeroConsensus)
	suite.Require().ErrorIs(err, tee.ErrInvalidConsensusState)

	// foreign type URL
	_, err = suite.lc.CreateClient(suite.ctx, types.NewAny("/example.ClientState", nil), validConsensus)
	suite.Require().ErrorIs(err, tee.ErrUnexpectedClientType)
}

func (suite *TEEClientTestSuite) TestUpdateClient() {
	prevHeight := types.NewHeight(1, 1)
	prevStateID := suite.setupClient(prevHeight)

	commitment := suite.updateCommitment(prevStateID, prevHeight, types.NewHeight(1, 2))
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	res, err := suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().NoError(err)
	suite.Require().True(res.Prove)
	suite.Require().Equal(types.NewHeight(1, 2), res.Height)

	newClientState, err := tee.UnpackClientState(res.NewAnyClientState)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewHeight(1, 2), newClientState.LatestHeight)

	newConsensusState, err := tee.UnpackConsensusState(res.NewAnyConsensusState)
	suite.Require().NoError(err)
	suite.Require().Equal(commitment.NewStateID, newConsensusState.StateID)
	suite.Require().Equal(commitment.Timestamp, newConsensusState.Timestamp)
}

func (suite *TEEClientTestSuite) TestUpdateClientMonotonicHeight() {
	// A verified header below the latest height must not lower it.
	prevHeight := types.NewHeight(1, 10)
	prevStateID := suite.setupClient(prevHeight)

	commitment := suite.updateCommitment(prevStateID, prevHeight, types.NewHeight(1, 5))
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	res, err := suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewHeight(1, 5), res.Height)

	newClientState, err := tee.UnpackClientState(res.NewAnyClientState)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewHeight(1, 10), newClientState.LatestHeight)
}

func (suite *TEEClientTestSuite) TestUpdateClientUnregisteredSigner() {
	prevHeight := types.NewHeight(1, 1)
	prevStateID := suite.setupClient(prevHeight)

	rogueKey, err := enclave.GenerateKey()
	suite.Require().NoError(err)

	commitment := suite.updateCommitment(prevStateID, prevHeight, types.NewHeight(1, 2))
	anyHeader := suite.signedHeader(rogueKey, commitment)

	_, err = suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().ErrorIs(err, tee.ErrUnregisteredEnclaveKey)
}

func (suite *TEEClientTestSuite) TestUpdateClientMissingPrevFields() {
	prevHeight := types.NewHeight(1, 1)
	suite.setupClient(prevHeight)

	headerTime, err := suite.now.Add(time.Minute)
	suite.Require().NoError(err)
	commitment := &commitments.UpdateClientCommitment{
		NewStateID: commitments.StateID{0xaa},
		NewHeight:  types.NewHeight(1, 2),
		Timestamp:  headerTime,
		Context:    commitments.EmptyContext{},
	}
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	_, err = suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().ErrorIs(err, tee.ErrInvalidHeader)
}

func (suite *TEEClientTestSuite) TestUpdateClientPrevStateIDMismatch() {
	prevHeight := types.NewHeight(1, 1)
	suite.setupClient(prevHeight)

	wrongStateID := commitments.StateID{0xff}
	commitment := suite.updateCommitment(wrongStateID, prevHeight, types.NewHeight(1, 2))
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	_, err := suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().ErrorIs(err, tee.ErrUnexpectedStateID)
}

func (suite *TEEClientTestSuite) TestUpdateClientUnknownPrevHeight() {
	prevHeight := types.NewHeight(1, 1)
	prevStateID := suite.setupClient(prevHeight)

	missingHeight := types.NewHeight(1, 9)
	commitment := suite.updateCommitment(prevStateID, missingHeight, types.NewHeight(1, 10))
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	_, err := suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().ErrorIs(err, context.ErrConsensusStateNotFound)
}

func (suite *TEEClientTestSuite) TestUpdateClientOutOfTrustingPeriod() {
	prevHeight := types.NewHeight(1, 1)
	prevStateID := suite.setupClient(prevHeight)

	commitment := suite.updateCommitment(prevStateID, prevHeight, types.NewHeight(1, 2))
	trustedLongAgo, err := types.FromUnixTimestampNanos(1)
	suite.Require().NoError(err)
	commitment.Context = commitments.NewTrustingPeriodContext(
		time.Hour, 5*time.Minute,
		commitment.Timestamp, trustedLongAgo,
	)
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	_, err = suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().ErrorIs(err, commitments.ErrOutOfTrustingPeriod)
}

func (suite *TEEClientTestSuite) TestUpdateClientHeaderFromFuture() {
	prevHeight := types.NewHeight(1, 1)
	prevStateID := suite.setupClient(prevHeight)

	commitment := suite.updateCommitment(prevStateID, prevHeight, types.NewHeight(1, 2))
	farFuture, err := suite.now.Add(time.Hour)
	suite.Require().NoError(err)
	commitment.Timestamp = farFuture
	commitment.Context = commitments.NewTrustingPeriodContext(
		2*time.Hour, 5*time.Minute,
		farFuture, suite.now,
	)
	anyHeader := suite.signedHeader(suite.enclaveKey, commitment)

	_, err = suite.lc.UpdateClient(suite.ctx, testClientID, anyHeader)
	suite.Require().ErrorIs(err, commitments.ErrHeaderFromFuture)
}

func (suite *TEEClientTestSuite) TestUpdateClientForeignHeaderType() {
	suite.setupClient(types.NewHeight(1, 1))

	_, err := suite.lc.UpdateClient(suite.ctx, testClientID, types.NewAny("/example.Header", nil))
	suite.Require().ErrorIs(err, tee.ErrUnexpectedHeaderType)
}

func (suite *TEEClientTestSuite) TestLatestHeight() {
	suite.setupClient(types.NewHeight(1, 7))

	height, err := suite.lc.LatestHeight(suite.ctx, testClientID)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewHeight(1, 7), height)

	_, err = suite.lc.LatestHeight(suite.ctx, "tee-client-99")
	suite.Require().ErrorIs(err, context.ErrClientStateNotFound)
}

func (suite *TEEClientTestSuite) TestVerifyUnimplemented() {
	suite.setupClient(types.NewHeight(1, 1))

	_, err := suite.lc.VerifyMembership(suite.ctx, testClientID, []byte("ibc"), "path", []byte("value"), types.NewHeight(1, 1), nil)
	suite.Require().ErrorIs(err, tee.ErrUnimplemented)

	_, err = suite.lc.VerifyNonMembership(suite.ctx, testClientID, []byte("ibc"), "path", types.NewHeight(1, 1), nil)
	suite.Require().ErrorIs(err, tee.ErrUnimplemented)
}

func (suite *TEEClientTestSuite) TestClientStateCodecRoundTrip() {
	cs := suite.clientState(types.NewHeight(3, 9), suite.enclaveKey.Address(), common.Address{0x01})
	anyClientState, err := tee.PackClientState(cs)
	suite.Require().NoError(err)
	suite.Require().Equal(tee.ClientStateTypeURL, anyClientState.TypeUrl)

	decoded, err := tee.UnpackClientState(anyClientState)
	suite.Require().NoError(err)
	suite.Require().Equal(cs, decoded)
}

func (suite *TEEClientTestSuite) TestConsensusStateCodecRoundTrip() {
	cs := tee.NewConsensusState(commitments.StateID{0x11, 0x22}, suite.now)
	anyConsensusState, err := tee.PackConsensusState(cs)
	suite.Require().NoError(err)

	decoded, err := tee.UnpackConsensusState(anyConsensusState)
	suite.Require().NoError(err)
	suite.Require().Equal(cs, decoded)
}
