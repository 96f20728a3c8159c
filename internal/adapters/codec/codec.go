// Package codec serializes metadata cache entries as CBOR, optionally zstd-compressed.
package codec

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/classmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

// Frame tags written as the first byte of every encoded entry.
const (
	tagRaw  byte = 0
	tagZstd byte = 1
)

var (
	encMode     cbor.EncMode
	decMode     cbor.DecMode
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Codec converts cache entries to and from bytes.
type Codec struct {
	compress bool
}

// New creates a Codec. When compress is set, encoded entries are zstd-compressed.
// Decode accepts both forms regardless.
func New(compress bool) *Codec {
	return &Codec{compress: compress}
}

// Encode serializes entry.
func (c *Codec) Encode(entry *domain.CacheEntry) ([]byte, error) {
	payload, err := encMode.Marshal(toDTO(entry))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheEncodeFailed.Error()), "class", entry.Class.String())
	}

	if !c.compress {
		return append([]byte{tagRaw}, payload...), nil
	}
	return zstdEncoder.EncodeAll(payload, []byte{tagZstd}), nil
}

// Decode restores an entry produced by Encode.
func (c *Codec) Decode(data []byte) (*domain.CacheEntry, error) {
	if len(data) == 0 {
		return nil, zerr.Wrap(domain.ErrCacheDecodeFailed, "empty entry")
	}

	payload := data[1:]
	switch data[0] {
	case tagRaw:
	case tagZstd:
		var err error
		payload, err = zstdDecoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error())
		}
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheDecodeFailed, "unknown frame"), "tag", data[0])
	}

	var dto entryDTO
	if err := decMode.Unmarshal(payload, &dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error())
	}
	if dto.Version != formatVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheDecodeFailed, "format version mismatch"), "version", dto.Version)
	}

	entry, err := fromDTO(&dto)
	if err != nil {
		return nil, zerr.With(err, "class", dto.Class)
	}
	return entry, nil
}

func toDTO(entry *domain.CacheEntry) *entryDTO {
	dto := &entryDTO{
		Version:   formatVersion,
		Class:     entry.Class.String(),
		Absent:    entry.IsAbsent(),
		Resources: entry.Resources,
		CreatedAt: entry.CreatedAt.UnixNano(),
		Options: optionsDTO{
			Container:  string(entry.Options.Container),
			Interfaces: entry.Options.IncludeInterfaces,
		},
	}
	if entry.IsAbsent() {
		return dto
	}

	dto.Container = string(entry.Hierarchy.Kind())
	for _, l := range entry.Hierarchy.Levels() {
		base := l.Base()
		_, mergeable := l.(domain.Mergeable)
		level := levelDTO{
			Name:      base.Name().String(),
			Mergeable: mergeable,
			Resources: base.FileResources,
			CreatedAt: base.CreatedAt.UnixNano(),
		}
		for _, p := range base.Properties.All() {
			level.Properties = append(level.Properties, memberDTO{Name: p.Name, Attributes: p.Attributes})
		}
		for _, m := range base.Methods.All() {
			level.Methods = append(level.Methods, memberDTO{Name: m.Name, Attributes: m.Attributes})
		}
		dto.Levels = append(dto.Levels, level)
	}
	return dto
}

func fromDTO(dto *entryDTO) (*domain.CacheEntry, error) {
	requested, err := domain.ParseContainerKind(dto.Options.Container)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error())
	}

	entry := &domain.CacheEntry{
		Class:     domain.NewInternedString(dto.Class),
		Resources: dto.Resources,
		CreatedAt: time.Unix(0, dto.CreatedAt),
		Options: domain.LookupOptions{
			Container:         requested,
			IncludeInterfaces: dto.Options.Interfaces,
		},
	}
	if dto.Absent {
		return entry, nil
	}

	kind, err := domain.ParseContainerKind(dto.Container)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error())
	}

	if kind == domain.ContainerMergeable {
		h := domain.NewMergeableHierarchyMetadata(dto.Class)
		for i := range dto.Levels {
			if !dto.Levels[i].Mergeable {
				return nil, zerr.With(zerr.Wrap(domain.ErrCacheDecodeFailed, "plain level in mergeable hierarchy"), "level", dto.Levels[i].Name)
			}
			if err := h.Add(&domain.MergeableClassMetadata{ClassMetadata: buildLevel(&dto.Levels[i])}); err != nil {
				return nil, zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error())
			}
		}
		entry.Hierarchy = h
		return entry, nil
	}

	h := domain.NewClassHierarchyMetadata(dto.Class)
	for i := range dto.Levels {
		var md domain.Metadata = buildLevel(&dto.Levels[i])
		if dto.Levels[i].Mergeable {
			md = &domain.MergeableClassMetadata{ClassMetadata: md.Base()}
		}
		if err := h.Add(md); err != nil {
			return nil, zerr.Wrap(err, domain.ErrCacheDecodeFailed.Error())
		}
	}
	entry.Hierarchy = h
	return entry, nil
}

func buildLevel(dto *levelDTO) *domain.ClassMetadata {
	md := domain.NewClassMetadata(dto.Name)
	md.CreatedAt = time.Unix(0, dto.CreatedAt)
	md.FileResources = dto.Resources
	for _, p := range dto.Properties {
		md.AddProperty(&domain.PropertyMetadata{Class: md.Name(), Name: p.Name, Attributes: p.Attributes})
	}
	for _, m := range dto.Methods {
		md.AddMethod(&domain.MethodMetadata{Class: md.Name(), Name: m.Name, Attributes: m.Attributes})
	}
	return md
}
