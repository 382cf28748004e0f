package pros

// Viewer identifies who is looking at a profile. The zero value is an
// anonymous visitor.
type Viewer struct {
	UserID        uint
	Role          string
	Authenticated bool
}

// ContactDisclosure is the per-viewer decision on the profile's phone fields.
// Redacted phones come back nil; IsContactable tells the client whether to
// render a contact button or an "unavailable" state.
type ContactDisclosure struct {
	CallPhone     *string
	WhatsappPhone *string
	IsContactable bool
}

// DiscloseContact decides whether the viewer may see the profile's phone
// numbers. The owner always sees them; everyone else only while the profile
// is published AND its user is entitled. List and detail views both go
// through here so disclosure can never diverge between the two shapes.
func DiscloseContact(v Viewer, p *ProProfile, entitled bool) ContactDisclosure {
	contactable := p.IsPublished && entitled

	if v.Authenticated && v.UserID == p.UserID {
		return ContactDisclosure{
			CallPhone:     &p.CallPhone,
			WhatsappPhone: &p.WhatsappPhone,
			IsContactable: contactable,
		}
	}

	if !contactable {
		return ContactDisclosure{IsContactable: false}
	}
	return ContactDisclosure{
		CallPhone:     &p.CallPhone,
		WhatsappPhone: &p.WhatsappPhone,
		IsContactable: true,
	}
}
