package customer

// ToDTO maps a stored customer to its wire shape.
func ToDTO(c *Customer) CustomerDTO {
	created := c.CreatedDate
	updated := c.UpdateDate

	dto := CustomerDTO{
		ID:           c.ID,
		Version:      c.Version,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		City:         c.City,
		State:        c.State,
		PostalCode:   c.PostalCode,
		CreatedDate:  &created,
		UpdateDate:   &updated,
	}
	if c.AddressLine2 != nil {
		line := *c.AddressLine2
		dto.AddressLine2 = &line
	}
	return dto
}

// FromDTO builds an unsaved customer; server-assigned fields are ignored.
func FromDTO(dto CustomerDTO) *Customer {
	c := &Customer{}
	ApplyUpdate(c, dto)
	return c
}

// ApplyUpdate copies the contact and address fields of dto onto c.
func ApplyUpdate(c *Customer, dto CustomerDTO) {
	c.Name = dto.Name
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.AddressLine1 = dto.AddressLine1
	c.AddressLine2 = nil
	if dto.AddressLine2 != nil {
		line := *dto.AddressLine2
		c.AddressLine2 = &line
	}
	c.City = dto.City
	c.State = dto.State
	c.PostalCode = dto.PostalCode
}
