package services

// SetCodeGenerator replaces the one-time code generator in tests
func SetCodeGenerator(s *AuthService, gen func() (string, error)) {
	s.generateCode = gen
}
