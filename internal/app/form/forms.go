package form

// Cafe is used by both the add and edit pages
var Cafe = &Schema{Fields: []FieldSpec{
	{Name: "name", Label: "Name", Kind: KindText, Rules: "required"},
	{Name: "description", Label: "Description", Kind: KindTextArea},
	{Name: "url", Label: "URL", Kind: KindURL, Rules: "omitempty,url"},
	{Name: "address", Label: "Address", Kind: KindText, Rules: "required"},
	{Name: "city_code", Label: "City", Kind: KindSelect},
	{Name: "image_url", Label: "Image URL", Kind: KindURL, Rules: "omitempty,url"},
}}

var Signup = &Schema{Fields: []FieldSpec{
	{Name: "username", Label: "Username", Kind: KindText, Rules: "required"},
	{Name: "first_name", Label: "First Name", Kind: KindText, Rules: "required"},
	{Name: "last_name", Label: "Last Name", Kind: KindText, Rules: "required"},
	{Name: "description", Label: "Description", Kind: KindTextArea},
	{Name: "email", Label: "Email", Kind: KindEmail, Rules: "required,email"},
	{Name: "password", Label: "Password", Kind: KindPassword, Rules: "required,min=6"},
	{Name: "image_url", Label: "Image URL", Kind: KindURL, Rules: "omitempty,url"},
}}

var Login = &Schema{Fields: []FieldSpec{
	{Name: "username", Label: "Username", Kind: KindText, Rules: "required"},
	{Name: "password", Label: "Password", Kind: KindPassword, Rules: "required,min=6"},
}}

// ProfileEdit leaves out username and password, which cannot be changed
var ProfileEdit = &Schema{Fields: []FieldSpec{
	{Name: "first_name", Label: "First Name", Kind: KindText, Rules: "required"},
	{Name: "last_name", Label: "Last Name", Kind: KindText, Rules: "required"},
	{Name: "description", Label: "Description", Kind: KindTextArea},
	{Name: "email", Label: "Email", Kind: KindEmail, Rules: "required,email"},
	{Name: "image_url", Label: "Image URL", Kind: KindURL, Rules: "omitempty,url"},
}}
