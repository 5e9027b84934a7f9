package feerecv

import (
	"math"

	"github.com/gogo/protobuf/proto"
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
)

// Protobuf representations of the models and messages of this package.
// They are encoded by gogo/protobuf from the struct tags. Field numbers
// are part of the persisted state and the signed bytes, never reuse them.

type metadataPB struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3"`
}

func (m *metadataPB) Reset()         { *m = metadataPB{} }
func (m *metadataPB) String() string { return proto.CompactTextString(m) }
func (*metadataPB) ProtoMessage()    {}

func toMetadataPB(m *feevault.Metadata) *metadataPB {
	if m == nil {
		return nil
	}
	return &metadataPB{Schema: m.Schema}
}

func (m *metadataPB) metadata() *feevault.Metadata {
	if m == nil {
		return nil
	}
	return &feevault.Metadata{Schema: m.Schema}
}

type feeReceiverPB struct {
	Metadata         *metadataPB `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Authorized       bool        `protobuf:"varint,2,opt,name=authorized,proto3"`
	SecondaryAddress []byte      `protobuf:"bytes,3,opt,name=secondary_address,proto3"`
	// Percentages are carried as int64 so that a value overflowing
	// int32 is rejected instead of truncated.
	VaultPercentage int64 `protobuf:"varint,4,opt,name=vault_percentage,proto3"`
}

func (m *feeReceiverPB) Reset()         { *m = feeReceiverPB{} }
func (m *feeReceiverPB) String() string { return proto.CompactTextString(m) }
func (*feeReceiverPB) ProtoMessage()    {}

type configurationPB struct {
	Metadata *metadataPB `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Owner    []byte      `protobuf:"bytes,2,opt,name=owner,proto3"`
}

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func toConfigurationPB(c *Configuration) *configurationPB {
	if c == nil {
		return nil
	}
	return &configurationPB{Metadata: toMetadataPB(c.Metadata), Owner: c.Owner}
}

func (m *configurationPB) configuration() *Configuration {
	if m == nil {
		return nil
	}
	return &Configuration{Metadata: m.Metadata.metadata(), Owner: m.Owner}
}

type addFeeReceiverMsgPB struct {
	Metadata         *metadataPB `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Receiver         []byte      `protobuf:"bytes,2,opt,name=receiver,proto3"`
	SecondaryAddress []byte      `protobuf:"bytes,3,opt,name=secondary_address,proto3"`
	VaultPercentage  int64       `protobuf:"varint,4,opt,name=vault_percentage,proto3"`
}

func (m *addFeeReceiverMsgPB) Reset()         { *m = addFeeReceiverMsgPB{} }
func (m *addFeeReceiverMsgPB) String() string { return proto.CompactTextString(m) }
func (*addFeeReceiverMsgPB) ProtoMessage()    {}

type recoverTokensMsgPB struct {
	Metadata    *metadataPB `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Ticker      string      `protobuf:"bytes,2,opt,name=ticker,proto3"`
	Destination []byte      `protobuf:"bytes,3,opt,name=destination,proto3"`
}

func (m *recoverTokensMsgPB) Reset()         { *m = recoverTokensMsgPB{} }
func (m *recoverTokensMsgPB) String() string { return proto.CompactTextString(m) }
func (*recoverTokensMsgPB) ProtoMessage()    {}

type updateConfigurationMsgPB struct {
	Metadata *metadataPB      `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Patch    *configurationPB `protobuf:"bytes,2,opt,name=patch,proto3"`
}

func (m *updateConfigurationMsgPB) Reset()         { *m = updateConfigurationMsgPB{} }
func (m *updateConfigurationMsgPB) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgPB) ProtoMessage()    {}

// decodePercentage narrows a decoded percentage. Values that do not fit
// int32 fail instead of wrapping around into the valid range.
func decodePercentage(p int64) (int32, error) {
	if p < math.MinInt32 || p > math.MaxInt32 {
		return 0, errors.Wrapf(ErrPercentage, "%d overflows int32", p)
	}
	return int32(p), nil
}

func unmarshal(raw []byte, pb proto.Message) error {
	if err := proto.Unmarshal(raw, pb); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (r *FeeReceiver) Marshal() ([]byte, error) {
	return proto.Marshal(&feeReceiverPB{
		Metadata:         toMetadataPB(r.Metadata),
		Authorized:       r.Authorized,
		SecondaryAddress: r.SecondaryAddress,
		VaultPercentage:  int64(r.VaultPercentage),
	})
}

func (r *FeeReceiver) Unmarshal(raw []byte) error {
	var pb feeReceiverPB
	if err := unmarshal(raw, &pb); err != nil {
		return err
	}
	p, err := decodePercentage(pb.VaultPercentage)
	if err != nil {
		return err
	}
	*r = FeeReceiver{
		Metadata:         pb.Metadata.metadata(),
		Authorized:       pb.Authorized,
		SecondaryAddress: pb.SecondaryAddress,
		VaultPercentage:  p,
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal(toConfigurationPB(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	var pb configurationPB
	if err := unmarshal(raw, &pb); err != nil {
		return err
	}
	*c = *pb.configuration()
	return nil
}

func (m *AddFeeReceiverMsg) Marshal() ([]byte, error) {
	return proto.Marshal(&addFeeReceiverMsgPB{
		Metadata:         toMetadataPB(m.Metadata),
		Receiver:         m.Receiver,
		SecondaryAddress: m.SecondaryAddress,
		VaultPercentage:  int64(m.VaultPercentage),
	})
}

func (m *AddFeeReceiverMsg) Unmarshal(raw []byte) error {
	var pb addFeeReceiverMsgPB
	if err := unmarshal(raw, &pb); err != nil {
		return err
	}
	p, err := decodePercentage(pb.VaultPercentage)
	if err != nil {
		return err
	}
	*m = AddFeeReceiverMsg{
		Metadata:         pb.Metadata.metadata(),
		Receiver:         pb.Receiver,
		SecondaryAddress: pb.SecondaryAddress,
		VaultPercentage:  p,
	}
	return nil
}

func (m *RecoverTokensMsg) Marshal() ([]byte, error) {
	return proto.Marshal(&recoverTokensMsgPB{
		Metadata:    toMetadataPB(m.Metadata),
		Ticker:      m.Ticker,
		Destination: m.Destination,
	})
}

func (m *RecoverTokensMsg) Unmarshal(raw []byte) error {
	var pb recoverTokensMsgPB
	if err := unmarshal(raw, &pb); err != nil {
		return err
	}
	*m = RecoverTokensMsg{
		Metadata:    pb.Metadata.metadata(),
		Ticker:      pb.Ticker,
		Destination: pb.Destination,
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal(&updateConfigurationMsgPB{
		Metadata: toMetadataPB(m.Metadata),
		Patch:    toConfigurationPB(m.Patch),
	})
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	var pb updateConfigurationMsgPB
	if err := unmarshal(raw, &pb); err != nil {
		return err
	}
	*m = UpdateConfigurationMsg{
		Metadata: pb.Metadata.metadata(),
		Patch:    pb.Patch.configuration(),
	}
	return nil
}
