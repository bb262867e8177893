package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// MUS serializers for the entities persisted by the storage layer. Written
// by hand: the two stored structs are small and their layouts are stable.
// Field order is part of the on-disk format; append new fields at the end.

var (
	// RecordMUS serializes Record values.
	RecordMUS recordMUS

	// DocumentMUS serializes Document values.
	DocumentMUS documentMUS

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
)

var (
	_ mus.Serializer[Record]   = RecordMUS
	_ mus.Serializer[Document] = DocumentMUS
)

type recordMUS struct{}

func (recordMUS) Marshal(r Record, bs []byte) (n int) {
	n = ord.String.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.FirstName, bs[n:])
	n += ord.String.Marshal(r.LastName, bs[n:])
	n += ord.String.Marshal(r.Email, bs[n:])
	n += ord.String.Marshal(r.Description, bs[n:])
	n += raw.TimeUnixMicro.Marshal(r.CreatedAt, bs[n:])
	return n
}

func (recordMUS) Unmarshal(bs []byte) (r Record, n int, err error) {
	var n1 int
	if r.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if r.FirstName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.LastName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Email, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	r.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	return r, n + n1, err
}

func (recordMUS) Size(r Record) int {
	return ord.String.Size(r.Id) +
		ord.String.Size(r.FirstName) +
		ord.String.Size(r.LastName) +
		ord.String.Size(r.Email) +
		ord.String.Size(r.Description) +
		raw.TimeUnixMicro.Size(r.CreatedAt)
}

func (recordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 5; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	return n + n1, err
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.OwnerId, bs[n:])
	n += ord.String.Marshal(d.Title, bs[n:])
	n += ord.String.Marshal(d.Content, bs[n:])
	n += ord.String.Marshal(d.Summary, bs[n:])
	n += vectorMUS.Marshal(d.Embedding, bs[n:])
	n += raw.TimeUnixMicro.Marshal(d.CreatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var n1 int
	if d.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if d.OwnerId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Summary, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Embedding, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	d.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	return d, n + n1, err
}

func (documentMUS) Size(d Document) int {
	return ord.String.Size(d.Id) +
		ord.String.Size(d.OwnerId) +
		ord.String.Size(d.Title) +
		ord.String.Size(d.Content) +
		ord.String.Size(d.Summary) +
		vectorMUS.Size(d.Embedding) +
		raw.TimeUnixMicro.Size(d.CreatedAt)
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 5; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	return n + n1, err
}
